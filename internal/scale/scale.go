package scale

import (
	"math"
	"slices"
)

// Scale maps domain values to pixel positions along one chart axis.
type Scale interface {
	// Position returns the pixel position of value. ok is false when the
	// scale cannot resolve the value (not in the domain, or not finite).
	Position(value float64) (px float64, ok bool)
	// Invert maps a pixel position back to the nearest domain value.
	// withinBandwidth is false when the pixel falls outside every band.
	Invert(px float64) (value float64, withinBandwidth bool)
	Bandwidth() float64
	Step() float64
	Padding() float64
	RangeMin() float64
	RangeMax() float64
}

type band struct {
	domain    []float64
	index     map[float64]int
	rangeMin  float64
	rangeMax  float64
	padding   float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over the distinct values in domain. Duplicates
// are dropped, the domain is kept sorted, padding is the inner padding
// fraction in [0, 1).
func NewBand(domain []float64, rangeMin, rangeMax, padding float64) Scale {
	uniq := make([]float64, 0, len(domain))
	index := make(map[float64]int, len(domain))
	for _, v := range domain {
		if _, ok := index[v]; ok {
			continue
		}
		index[v] = 0
		uniq = append(uniq, v)
	}
	slices.Sort(uniq)
	for i, v := range uniq {
		index[v] = i
	}

	b := &band{
		domain:   uniq,
		index:    index,
		rangeMin: rangeMin,
		rangeMax: rangeMax,
		padding:  math.Max(0, math.Min(padding, 0.99)),
	}
	if n := len(uniq); n > 0 {
		b.step = (rangeMax - rangeMin) / float64(n)
		b.bandwidth = b.step * (1 - b.padding)
	}
	return b
}

func (b *band) Position(value float64) (float64, bool) {
	i, ok := b.index[value]
	if !ok {
		return 0, false
	}
	halfPadding := (b.step - b.bandwidth) / 2
	return b.rangeMin + float64(i)*b.step + halfPadding, true
}

func (b *band) Invert(px float64) (float64, bool) {
	if len(b.domain) == 0 || b.step <= 0 {
		return 0, false
	}
	i := int(math.Floor((px - b.rangeMin) / b.step))
	if i < 0 || i >= len(b.domain) {
		return 0, false
	}
	value := b.domain[i]
	start, _ := b.Position(value)
	return value, px >= start && px <= start+b.bandwidth
}

func (b *band) Bandwidth() float64 { return b.bandwidth }
func (b *band) Step() float64      { return b.step }
func (b *band) Padding() float64   { return b.padding }
func (b *band) RangeMin() float64  { return b.rangeMin }
func (b *band) RangeMax() float64  { return b.rangeMax }

type linear struct {
	domainMin float64
	domainMax float64
	rangeMin  float64
	rangeMax  float64
}

// NewLinear builds a continuous scale from [domainMin, domainMax] onto
// [rangeMin, rangeMax].
func NewLinear(domainMin, domainMax, rangeMin, rangeMax float64) Scale {
	return &linear{
		domainMin: domainMin,
		domainMax: domainMax,
		rangeMin:  rangeMin,
		rangeMax:  rangeMax,
	}
}

func (l *linear) Position(value float64) (float64, bool) {
	span := l.domainMax - l.domainMin
	if span == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return l.rangeMin + (value-l.domainMin)/span*(l.rangeMax-l.rangeMin), true
}

func (l *linear) Invert(px float64) (float64, bool) {
	span := l.rangeMax - l.rangeMin
	if span == 0 {
		return 0, false
	}
	value := l.domainMin + (px-l.rangeMin)/span*(l.domainMax-l.domainMin)
	return value, px >= math.Min(l.rangeMin, l.rangeMax) && px <= math.Max(l.rangeMin, l.rangeMax)
}

func (l *linear) Bandwidth() float64 { return 0 }
func (l *linear) Step() float64      { return 0 }
func (l *linear) Padding() float64   { return 0 }
func (l *linear) RangeMin() float64  { return l.rangeMin }
func (l *linear) RangeMax() float64  { return l.rangeMax }
