// Package livereload reloads connected browsers during development: pages get
// a script injected into their <head> that reconnects to the reload endpoint
// and reloads once the restarted server accepts the connection again.
package livereload

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type bufferingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bufferingWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

// InjectScript wraps handlerFunc and rewrites successful HTML responses so
// their <head> carries the reload script pointing at path.
func InjectScript(path string, handlerFunc gin.HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		w := &bufferingWriter{
			body:           &bytes.Buffer{},
			ResponseWriter: ctx.Writer,
		}
		ctx.Writer = w
		handlerFunc(ctx)
		ctx.Next()
		if w.Status() != http.StatusOK {
			return
		}

		script := &bytes.Buffer{}
		err := reloadScriptTemplate.Execute(script, &reloadScriptConfig{Path: path, RetryInterval: 500, MaxRetries: 10})
		if err != nil {
			log.Fatalf("could not execute livereload script template: %s", err)
		}

		doc, err := html.Parse(w.body)
		if err != nil {
			log.Fatalf("could not parse response body: %s", err)
		}

		if err := appendScriptToHead(doc.FirstChild, script.String()); err != nil {
			log.Fatalf("unable to inject livereload script into HTML response body: %s", err)
		}

		w.body.Reset()
		if err := html.Render(w.ResponseWriter, doc); err != nil {
			log.Fatalf("could not render modified HTML response: %s", err)
		}
	}
}

// Handler holds the reload websocket open until the server goes away.
func Handler(c *gin.Context) {
	w := c.Writer
	r := c.Request
	socket, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("could not open livereload websocket: %s", err)
		_, _ = w.Write([]byte("could not open livereload websocket"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer socket.CloseNow()

	ctx := socket.CloseRead(c)

	<-ctx.Done()
}

func appendScriptToHead(n *html.Node, content string) error {
	if n == nil {
		return errors.New("no <head> element node found")
	}

	if n.Type == html.ElementNode && n.Data == "head" {
		n.AppendChild(&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Script,
			Data:     atom.Script.String(),
			FirstChild: &html.Node{
				Type: html.TextNode,
				Data: content,
			},
		})
		return nil
	}

	next := n.FirstChild
	if next == nil {
		next = n.NextSibling
	}

	return appendScriptToHead(next, content)
}
