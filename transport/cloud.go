package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kjmorgan/edgehttp"
)

// cloudEnvelope is the framing a CloudTransport client sends/receives
// over its single WebSocket connection: one JSON object per request or
// response, identified by the same request id edgehttp threads through
// the dispatcher.
type cloudEnvelope struct {
	RequestID string            `json:"requestId"`
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Body      string            `json:"body"`
	WireText  string            `json:"wireText,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// CloudTransport is a WebSocket reference transport for the remote-
// tunnel interface, grounded in the upgrade-and-pump pattern the
// elliota43 app-server uses for its hub-backed websocket endpoints —
// here reduced to a single long-lived connection per device rather than
// a pub/sub hub, since the core only ever talks to one cloud peer.
type CloudTransport struct {
	id       string
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conn   *websocket.Conn
	server *http.Server

	pending chan *edgehttp.Request
}

// NewCloudTransport returns a CloudTransport identified by id.
func NewCloudTransport(id string) *CloudTransport {
	return &CloudTransport{
		id: id,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pending: make(chan *edgehttp.Request, 64),
	}
}

// Start listens for the single upgrade request that establishes the
// tunnel connection and begins pumping inbound envelopes into pending.
func (t *CloudTransport) Start(ctx context.Context, port int) (bool, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tunnel", func(w http.ResponseWriter, r *http.Request) {
		conn, err := t.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		t.mu.Lock()
		t.conn = conn
		t.mu.Unlock()
		go t.readLoop(ctx, conn)
	})

	listener, err := net.Listen("tcp", addrForPort(port))
	if err != nil {
		return false, err
	}
	server := &http.Server{Handler: mux}
	t.mu.Lock()
	t.server = server
	t.mu.Unlock()

	go server.Serve(listener)
	return true, nil
}

func (t *CloudTransport) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var env cloudEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure,
			) {
				return
			}
			return
		}

		requestID := env.RequestID
		if requestID == "" {
			requestID = uuid.NewString()
		}
		req := &edgehttp.Request{
			Method:    edgehttp.ParseMethod(env.Method),
			Path:      env.Path,
			RawBody:   env.Body,
			RequestID: requestID,
			Source:    edgehttp.CloudServer,
		}

		select {
		case t.pending <- req:
		case <-ctx.Done():
			return
		}
	}
}

// ReceiveMessage returns the next buffered request, or nil if none is
// pending.
func (t *CloudTransport) ReceiveMessage(ctx context.Context) (*edgehttp.Request, error) {
	select {
	case req := <-t.pending:
		return req, nil
	default:
		return nil, nil
	}
}

// SendMessage writes wireText back over the tunnel connection, framed
// as a cloudEnvelope so the peer can correlate it with requestID.
func (t *CloudTransport) SendMessage(ctx context.Context, requestID string, wireText string) (bool, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return false, edgehttp.NewTransportFailureError(t.id, "SendMessage", errors.New("no active tunnel connection"))
	}

	env := cloudEnvelope{RequestID: requestID, WireText: wireText}
	data, err := json.Marshal(env)
	if err != nil {
		return false, edgehttp.NewTransportFailureError(t.id, "SendMessage", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return false, edgehttp.NewTransportFailureError(t.id, "SendMessage", err)
	}
	return true, nil
}

// Stop closes the tunnel connection and the HTTP server. Idempotent.
func (t *CloudTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var err error
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	if t.server != nil {
		err = t.server.Close()
		t.server = nil
	}
	return err
}

// GetID returns the configured transport identifier.
func (t *CloudTransport) GetID() string { return t.id }

// GetSource reports CloudServer.
func (t *CloudTransport) GetSource() edgehttp.Source { return edgehttp.CloudServer }

func addrForPort(port int) string {
	if port <= 0 {
		return ":0"
	}
	return ":" + strconv.Itoa(port)
}
