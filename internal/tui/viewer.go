package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/websocket"
	"github.com/hoverplot/hoverplot/internal/geom"
	"github.com/hoverplot/hoverplot/internal/lrucache"
	"github.com/hoverplot/hoverplot/internal/protocol"
	"github.com/hoverplot/hoverplot/internal/scale"
)

// tickMsg drives frame decoding at 30 FPS so bursts of hover frames collapse
// into one redraw
type tickMsg struct{}

const sgrReset = "\x1b[0m"

// band highlight background, drawn behind everything but the bars
const bandBg = "\x1b[48;5;238m"

// sgrPrefixCache caches the SGR prefix for a bar colour (no reset)
var sgrPrefixCache = lrucache.NewLruCache[uint32, string](2048)

var rotationNames = map[uint8]string{
	protocol.Rot0:       "0°",
	protocol.Rot90:      "90°",
	protocol.Rot180:     "180°",
	protocol.RotMinus90: "-90°",
}

var stickNames = map[uint8]string{
	protocol.StickCursor: "cursor",
	protocol.StickTop:    "top",
	protocol.StickBottom: "bottom",
	protocol.StickMiddle: "middle",
}

type viewerModel struct {
	apiHost   string
	conn      *websocket.Conn
	connected bool
	saving    bool
	err       error
	spinner   spinner.Model

	chartW int
	chartH int

	series   []protocol.Datum
	padding  float64
	rotation uint8
	snap     bool
	stickTo  uint8

	cursorX int
	cursorY int

	// latest frame bytes from the websocket, decoded on tick
	pendingFrame []byte
	frame        protocol.Frame
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func getSGRPrefix(colour uint32) string {
	if s, ok := sgrPrefixCache.Get(colour); ok {
		return s
	}
	r := (colour >> 16) & 0xff
	g := (colour >> 8) & 0xff
	b := colour & 0xff
	prefix := fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	sgrPrefixCache.Add(colour, prefix)
	return prefix
}

func (m *viewerModel) Init() tea.Cmd {
	if m.chartW == 0 {
		m.chartW = 76
	}
	if m.chartH == 0 {
		m.chartH = 20
	}
	m.snap = true
	return tea.Batch(connectToAPI(m.apiHost), m.spinner.Tick, tick())
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectionResult:
		if msg.Err != nil {
			m.err = msg.Err
			m.connected = false
			return m, nil
		}
		m.conn = msg.Conn
		m.connected = true
		m.err = nil
		m.applyLayout(msg.Layout)
		return m, tea.Batch(
			listenForMessages(m.conn),
			m.sendChartArea(),
		)

	case wsMessage:
		if msg.Err != nil {
			m.err = msg.Err
			m.connected = false
			return m, nil
		}
		if msg.Data != nil {
			m.pendingFrame = msg.Data
		}
		return m, listenForMessages(m.conn)

	case tickMsg:
		if m.pendingFrame != nil {
			if err := m.frame.Decode(m.pendingFrame); err != nil {
				m.err = err
			}
			m.pendingFrame = nil
		}
		return m, tick()

	case spinner.TickMsg:
		if m.connected && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.chartW = max(16, msg.Width-4)
		m.chartH = max(8, msg.Height-6)
		if m.connected {
			return m, m.sendChartArea()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion || !m.connected {
			return m, nil
		}
		// offset for the status line and the chart border
		x := msg.X - 1
		y := msg.Y - 2
		if x < 0 || x >= m.chartW || y < 0 || y >= m.chartH {
			return m, sendMessage(m.conn, &protocol.Command{Cmd: protocol.PointerLeave})
		}
		m.cursorX = x
		m.cursorY = y
		return m, sendMessage(m.conn, &protocol.PointerMove{X: uint16(x), Y: uint16(y)})

	case tea.KeyMsg:
		return m.handleKey(msg)

	case saveResult:
		m.saving = false
		m.err = msg.Err
		return m, nil

	case quitMessage:
		if m.conn != nil {
			_ = m.conn.CloseNow()
		}
		return m, nil
	}

	return m, nil
}

func (m *viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.connected {
		return m, nil
	}

	moveCursor := func(dx, dy int) tea.Cmd {
		m.cursorX = min(max(0, m.cursorX+dx), m.chartW-1)
		m.cursorY = min(max(0, m.cursorY+dy), m.chartH-1)
		return sendMessage(m.conn, &protocol.PointerMove{X: uint16(m.cursorX), Y: uint16(m.cursorY)})
	}

	switch msg.String() {
	case "left":
		return m, moveCursor(-1, 0)
	case "right":
		return m, moveCursor(1, 0)
	case "up":
		return m, moveCursor(0, -1)
	case "down":
		return m, moveCursor(0, 1)
	case "r":
		m.rotation = (m.rotation + 1) % 4
		return m, sendMessage(m.conn, &protocol.SetRotation{Rotation: m.rotation})
	case "s":
		cmd := protocol.SnapEnable
		if m.snap {
			cmd = protocol.SnapDisable
		}
		m.snap = !m.snap
		return m, sendMessage(m.conn, &protocol.Command{Cmd: cmd})
	case "t":
		m.stickTo = (m.stickTo + 1) % 4
		return m, sendMessage(m.conn, &protocol.SetStickTo{StickTo: m.stickTo})
	case "x":
		return m, sendMessage(m.conn, &protocol.Command{Cmd: protocol.PointerLeave})
	case "ctrl+s":
		m.saving = true
		return m, tea.Batch(m.spinner.Tick, saveLayout(m.apiHost))
	}

	return m, nil
}

func (m *viewerModel) applyLayout(l *protocol.Layout) {
	if l == nil {
		return
	}
	m.series = l.Data
	m.padding = l.Padding
	m.rotation = l.Rotation
	m.snap = l.Snap
	m.stickTo = l.StickTo
}

// sendChartArea pins the server's chart panel to this client's cell grid, so
// frame geometry arrives in cell units.
func (m *viewerModel) sendChartArea() tea.Cmd {
	return sendMessage(m.conn, &protocol.SetChartArea{
		Top:    0,
		Left:   0,
		Width:  float64(m.chartW),
		Height: float64(m.chartH),
	})
}

func (m *viewerModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(chartFrameStyle.Render(m.renderChart()))
	sb.WriteString("\n")
	sb.WriteString(helpDescStyle.Render(" arrows/mouse: hover · r: rotate · s: snap · t: stick · ctrl+s: save · ?: help · q: quit"))
	return sb.String()
}

func (m *viewerModel) statusLine() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf(" %s", m.err))
	}
	if !m.connected {
		return statusStyle.Render(fmt.Sprintf("%s connecting to %s", m.spinner.View(), m.apiHost))
	}

	status := fmt.Sprintf("rot %s · snap %s · stick %s",
		rotationNames[m.rotation], onOff(m.snap), stickNames[m.stickTo])
	if m.saving {
		status = m.spinner.View() + " saving · " + status
	}
	if m.frame.BandVisible {
		status += tooltipStyle.Render(fmt.Sprintf(" x = %g ", m.frame.Value))
	}
	return statusStyle.Render(status)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderChart rasterises the bars and the latest hover frame onto the cell
// grid. Frame geometry is already in cell units (see sendChartArea).
func (m *viewerModel) renderChart() string {
	bars := m.barRects()

	var sb strings.Builder
	for y := 0; y < m.chartH; y++ {
		for x := 0; x < m.chartW; x++ {
			sb.WriteString(m.renderCell(float64(x)+0.5, float64(y)+0.5, x, y, bars))
		}
		if y < m.chartH-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m *viewerModel) renderCell(cx, cy float64, x, y int, bars []barRect) string {
	if x == m.cursorX && y == m.cursorY {
		return "┼"
	}

	inBand := m.frame.BandVisible && m.frame.Band.Contains(geom.Point{X: cx, Y: cy})

	for i := range bars {
		if bars[i].rect.Contains(geom.Point{X: cx, Y: cy}) {
			prefix := getSGRPrefix(bars[i].colour)
			if inBand {
				return prefix + bandBg + "█" + sgrReset
			}
			return prefix + "█" + sgrReset
		}
	}

	if inBand {
		return bandBg + " " + sgrReset
	}

	if m.frame.LineVisible {
		if m.frame.Line.Height == 0 && y == int(m.frame.Line.Top) {
			return "─"
		}
		if m.frame.Line.Width == 0 && x == int(m.frame.Line.Left) {
			return "│"
		}
	}

	return " "
}

type barRect struct {
	rect   geom.Rect
	colour uint32
}

// barRects lays the series out the same way the canvas client does: the band
// axis carries the X values, bars grow along the metric axis.
func (m *viewerModel) barRects() []barRect {
	if len(m.series) == 0 {
		return nil
	}

	area := geom.Rect{Width: float64(m.chartW), Height: float64(m.chartH)}
	bandRange := area.Width
	metricRange := area.Height
	horizontal := m.rotation == protocol.Rot0 || m.rotation == protocol.Rot180
	if !horizontal {
		bandRange, metricRange = metricRange, bandRange
	}

	domain := make([]float64, len(m.series))
	var maxY float64
	for i, d := range m.series {
		domain[i] = float64(d.X)
		if y := float64(d.Y); y > maxY {
			maxY = y
		}
	}
	xs := scale.NewBand(domain, 0, bandRange, m.padding)
	ys := scale.NewLinear(0, maxY, 0, metricRange)

	bars := make([]barRect, 0, len(m.series))
	for _, d := range m.series {
		start, ok := xs.Position(float64(d.X))
		if !ok {
			continue
		}
		length, ok := ys.Position(float64(d.Y))
		if !ok {
			continue
		}
		bw := xs.Bandwidth()

		var r geom.Rect
		switch m.rotation {
		case protocol.Rot90:
			r = geom.Rect{Top: start, Left: 0, Width: length, Height: bw}
		case protocol.RotMinus90:
			r = geom.Rect{Top: area.Height - start - bw, Left: 0, Width: length, Height: bw}
		case protocol.Rot180:
			r = geom.Rect{Top: area.Height - length, Left: area.Width - start - bw, Width: bw, Height: length}
		default:
			r = geom.Rect{Top: area.Height - length, Left: start, Width: bw, Height: length}
		}
		bars = append(bars, barRect{rect: r, colour: d.Colour})
	}
	return bars
}
