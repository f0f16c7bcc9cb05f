package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/hoverplot/hoverplot/cmd/web"
	"github.com/hoverplot/hoverplot/internal/database"
	"github.com/hoverplot/hoverplot/internal/engine"
	"github.com/hoverplot/hoverplot/internal/livereload"
)

var srv *http.Server

type ServerConfig interface {
	Port() uint
	CanvasWidth() float64
	CanvasHeight() float64
}

type server struct {
	cfg          ServerConfig
	db           database.DatabaseService
	engine       engine.Engine
	listeners    map[*listener]struct{}
	listenersMtx sync.Mutex
	lastFrame    atomic.Pointer[[]byte]
}

type listener struct {
	msgs chan []byte
}

func NewServer(cfg ServerConfig, db database.DatabaseService, engine engine.Engine, ctx context.Context) *http.Server {
	if srv != nil {
		return srv
	}

	s := &server{
		cfg:       cfg,
		db:        db,
		engine:    engine,
		listeners: make(map[*listener]struct{}),
	}

	srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port()),
		Handler:           s.registerRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		for {
			var f []byte
			var ok bool
			select {
			case <-ctx.Done():
				return
			case f, ok = <-engine.Output():
				if !ok {
					return
				}
			}
			s.lastFrame.Store(&f)

			s.listenersMtx.Lock()
			for l := range s.listeners {
				select {
				case l.msgs <- f:
				default:
					log.Println("listener too slow, frame dropped")
				}
			}
			s.listenersMtx.Unlock()
		}
	}()
	go engine.Start()

	return srv
}

func (s *server) addListener(l *listener) {
	s.listenersMtx.Lock()
	defer s.listenersMtx.Unlock()
	s.listeners[l] = struct{}{}
	if lf := s.lastFrame.Load(); lf != nil {
		l.msgs <- *lf
	}
}

func (s *server) removeListener(l *listener) {
	s.listenersMtx.Lock()
	defer s.listenersMtx.Unlock()
	delete(s.listeners, l)
}

func (s *server) registerRoutes() http.Handler {
	r := gin.Default()

	r.Static("/assets", "./cmd/web/assets")

	globals := web.Globals{
		CanvasWidth:  s.cfg.CanvasWidth(),
		CanvasHeight: s.cfg.CanvasHeight(),
	}

	r.GET("/_livereload", livereload.Handler)

	r.GET("/", livereload.InjectScript("/_livereload", func(c *gin.Context) {
		templ.Handler(web.Index("/chart", &globals)).ServeHTTP(c.Writer, c.Request)
	}))

	r.GET("/chart", func(c *gin.Context) {
		templ.Handler(web.Chart(&globals, s.engine.Rotation(), s.engine.Snapping())).ServeHTTP(c.Writer, c.Request)
	})

	r.GET("/chartinfo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"canvasWidth":  s.cfg.CanvasWidth(),
			"canvasHeight": s.cfg.CanvasHeight(),
			"rotation":     s.engine.Rotation(),
			"snapping":     s.engine.Snapping(),
		})
	})

	r.GET("/layout", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/octet-stream", s.engine.Layout())
	})

	r.GET("/hover", s.hoverHandler)

	r.POST("/save", func(c *gin.Context) {
		layout := s.engine.Layout()
		if len(layout) == 0 {
			c.String(http.StatusInternalServerError, "no layout")
			return
		}
		err := s.db.WriteLayout(c, layout)
		if err != nil {
			log.Printf("could not save layout: %s", err)
			c.String(http.StatusInternalServerError, "could not save layout")
			return
		}
		c.String(http.StatusOK, "layout saved")
	})

	return r
}

func (s *server) hoverHandler(c *gin.Context) {
	l := &listener{msgs: make(chan []byte, 4)}
	s.addListener(l)
	defer s.removeListener(l)

	w := c.Writer
	r := c.Request
	socket, err := websocket.Accept(w, r, nil)

	if err != nil {
		log.Printf("could not open websocket: %s", err)
		_, _ = w.Write([]byte("could not open websocket"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer socket.CloseNow()

	readerMsgChan := make(chan []byte)
	readerErrChan := make(chan error)
	reader := func() {
		_, data, err := socket.Read(c)
		if err != nil {
			readerErrChan <- err
			return
		}
		readerMsgChan <- data
	}

	go reader()

	for {
		select {
		case <-c.Done():
			return
		case payload := <-l.msgs:
			err := socket.Write(c, websocket.MessageBinary, payload)
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			if err != nil {
				log.Printf("could not write to websocket: %s", err)
				return
			}
		case msg := <-readerMsgChan:
			err = s.engine.SubmitMessage(msg)
			if err != nil {
				log.Printf("websocket message produced an error: %s", err)
			}
			go reader()
		case err := <-readerErrChan:
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			log.Printf("could not read from websocket: %s", err)
			return
		}
	}
}
