package ingest

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// waitForBlocks polls the sink until n blocks arrive or the deadline passes.
func waitForBlocks(t *testing.T, sink *recordingSink, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(sink.blocks) >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d blocks, have %q", n, sink.blocks)
}

func TestServerIngestsTextFrames(t *testing.T) {
	sink := &recordingSink{}
	in := New(sink)
	srv := NewServer(in, nil)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("  from the hook \r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x00}); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("second")); err != nil {
		t.Fatalf("write: %v", err)
	}

	waitForBlocks(t, sink, 2)
	if sink.blocks[0] != "from the hook" || sink.blocks[1] != "second" {
		t.Errorf("blocks = %q", sink.blocks)
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	sink := &recordingSink{}
	in := New(sink)
	srv := NewServer(in, nil)

	if err := srv.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	addr := srv.Addr()
	if addr == "" {
		t.Fatal("Addr empty after Start")
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForBlocks(t, sink, 1)
	conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
