package tui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/websocket"
	"github.com/hoverplot/hoverplot/internal/protocol"
)

type wsMessage struct {
	Data []byte
	Err  error
}

type connectionResult struct {
	Conn      *websocket.Conn
	Connected bool
	Err       error
	Layout    *protocol.Layout
}

type saveResult struct {
	Err error
}

func connectToAPI(host string) tea.Cmd {
	return func() tea.Msg {
		layout, err := getLayout(host)
		if err != nil {
			return connectionResult{Connected: false, Err: fmt.Errorf("could not get layout: %s", err)}
		}

		u := url.URL{Scheme: "ws", Host: host, Path: "/hover"}
		conn, _, err := websocket.Dial(context.Background(), u.String(), nil)
		if err != nil {
			return connectionResult{Connected: false, Err: fmt.Errorf("websocket connection failed: %s", err)}
		}

		return connectionResult{Conn: conn, Connected: true, Layout: layout}
	}
}

func getLayout(host string) (*protocol.Layout, error) {
	resp, err := http.Get(fmt.Sprintf("http://%s/layout", host))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	layout := &protocol.Layout{}
	if err := layout.Decode(b); err != nil {
		return nil, err
	}
	return layout, nil
}

func listenForMessages(conn *websocket.Conn) tea.Cmd {
	return func() tea.Msg {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return wsMessage{Err: err}
		}
		return wsMessage{Data: data}
	}
}

func sendMessage(conn *websocket.Conn, msg protocol.ClientMessage) tea.Cmd {
	b := msg.Encode()
	return func() tea.Msg {
		err := conn.Write(context.Background(), websocket.MessageBinary, b)
		if err != nil {
			return wsMessage{Err: err}
		}
		return nil
	}
}

func saveLayout(host string) tea.Cmd {
	return func() tea.Msg {
		resp, err := http.Post(fmt.Sprintf("http://%s/save", host), "text/plain", nil)
		if err != nil {
			return saveResult{Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return saveResult{Err: fmt.Errorf("save failed: %s", resp.Status)}
		}
		return saveResult{}
	}
}
