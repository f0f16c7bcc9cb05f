package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hoverplot/hoverplot/internal/database"
	"github.com/hoverplot/hoverplot/internal/engine"
	"github.com/hoverplot/hoverplot/internal/protocol"
	"github.com/hoverplot/hoverplot/internal/server"
	"github.com/stretchr/testify/suite"
)

type APITestSuite struct {
	suite.Suite
	server *http.Server
	ts     *httptest.Server
	db     database.DatabaseService
	engine engine.Engine
	dbFile string
	cancel context.CancelFunc
}

type testConfig struct {
	port         uint
	canvasWidth  float64
	canvasHeight float64
}

func (c *testConfig) Port() uint            { return c.port }
func (c *testConfig) CanvasWidth() float64  { return c.canvasWidth }
func (c *testConfig) CanvasHeight() float64 { return c.canvasHeight }

// testDatabaseConfig implements DatabaseConfig for integration tests
type testDatabaseConfig struct {
	dbUrl string
}

func (c *testDatabaseConfig) DBUrl() string { return c.dbUrl }

// The database and server constructors are singletons, so the whole suite
// shares one stack.
func (suite *APITestSuite) SetupSuite() {
	tmpFile, err := os.CreateTemp("", "test_integration_*.db")
	suite.Require().NoError(err)
	dbFile := tmpFile.Name()
	tmpFile.Close()

	cfg := &testConfig{port: 8080, canvasWidth: 640, canvasHeight: 480}
	dbCfg := &testDatabaseConfig{dbUrl: dbFile}
	db := database.NewDatabaseService(dbCfg)
	ctx, cancel := context.WithCancel(context.Background())
	eng := engine.NewEngine(cfg, nil, ctx)
	suite.server = server.NewServer(cfg, db, eng, ctx)
	suite.ts = httptest.NewServer(suite.server.Handler)
	suite.db = db
	suite.engine = eng
	suite.dbFile = dbFile
	suite.cancel = cancel
}

func (suite *APITestSuite) TearDownSuite() {
	suite.ts.Close()
	if suite.cancel != nil {
		suite.cancel()
	}
	suite.server.Close()
	suite.db.Close()
	if suite.dbFile != "" {
		os.Remove(suite.dbFile)
	}
}

func (suite *APITestSuite) dialHover() *websocket.Conn {
	u, err := url.Parse(suite.ts.URL)
	suite.Require().NoError(err)
	u.Scheme = "ws"
	u.Path = "/hover"

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	suite.Require().NoError(err)
	return c
}

func (suite *APITestSuite) readFrame(c *websocket.Conn) protocol.Frame {
	suite.Require().NoError(c.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := c.ReadMessage()
	suite.Require().NoError(err)
	var frame protocol.Frame
	suite.Require().NoError(frame.Decode(msg))
	return frame
}

func (suite *APITestSuite) send(c *websocket.Conn, msg protocol.ClientMessage) {
	suite.Require().NoError(c.WriteMessage(websocket.BinaryMessage, msg.Encode()))
}

func (suite *APITestSuite) TestIndexPage() {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	suite.server.Handler.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `data-chart-path="/chart"`)
}

func (suite *APITestSuite) TestChartFragment() {
	req := httptest.NewRequest("GET", "/chart", nil)
	w := httptest.NewRecorder()
	suite.server.Handler.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, `<canvas id="chart-canvas" width="640" height="480">`)
	suite.Contains(body, "snap to band")
}

func (suite *APITestSuite) TestChartInfo() {
	req := httptest.NewRequest("GET", "/chartinfo", nil)
	w := httptest.NewRecorder()
	suite.server.Handler.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "\"canvasWidth\":640")
	suite.Contains(body, "\"canvasHeight\":480")
}

func (suite *APITestSuite) TestLayoutEndpoint() {
	req := httptest.NewRequest("GET", "/layout", nil)
	w := httptest.NewRecorder()
	suite.server.Handler.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var layout protocol.Layout
	suite.NoError(layout.Decode(w.Body.Bytes()))
}

func (suite *APITestSuite) TestHoverWebSocket() {
	c := suite.dialHover()
	defer c.Close()

	// new listeners get the last frame replayed
	suite.readFrame(c)

	suite.send(c, &protocol.SetChartArea{Top: 10, Left: 20, Width: 100, Height: 80})
	suite.readFrame(c)

	suite.send(c, &protocol.SetSeries{
		Padding: 0.2,
		Count:   4,
		Data: []protocol.Datum{
			{X: 0, Y: 5, Colour: 0xff0000},
			{X: 1, Y: 9, Colour: 0x00ff00},
			{X: 2, Y: 3, Colour: 0x0000ff},
			{X: 3, Y: 7, Colour: 0xffffff},
		},
	})
	frame := suite.readFrame(c)
	suite.False(frame.BandVisible)

	// step 25, so canvas x 50 (panel x 30) falls in the second band
	suite.send(c, &protocol.PointerMove{X: 50, Y: 50})
	frame = suite.readFrame(c)

	suite.True(frame.BandVisible)
	suite.Equal(float64(1), frame.Value)
	suite.Equal(float64(10), frame.Band.Top)
	suite.Equal(float64(45), frame.Band.Left)
	suite.Equal(float64(25), frame.Band.Width)
	suite.Equal(float64(80), frame.Band.Height)
	suite.True(frame.LineVisible)

	// off the panel, highlight goes away
	suite.send(c, &protocol.PointerMove{X: 300, Y: 300})
	frame = suite.readFrame(c)
	suite.False(frame.BandVisible)
	suite.Equal(float64(0), frame.Band.Width)
	suite.Equal(float64(0), frame.Band.Height)
}

func (suite *APITestSuite) TestSaveLayout() {
	req := httptest.NewRequest("POST", "/save", nil)
	w := httptest.NewRecorder()
	suite.server.Handler.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	saved, err := suite.db.GetLayout()
	suite.NoError(err)
	suite.NotEmpty(saved)
	suite.Equal(suite.engine.Layout(), saved)

	var layout protocol.Layout
	suite.NoError(layout.Decode(saved))
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
