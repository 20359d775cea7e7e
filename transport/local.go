// Package transport provides reference Transport implementations for
// edgehttp. Neither is part of the core: the core only depends on the
// edgehttp.Transport interface, and treats how bytes reach it as an
// external collaborator's concern.
package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kjmorgan/edgehttp"
)

// LocalTransport is a raw-TCP reference transport for the on-device/LAN
// interface, grounded in the accept-loop and line-oriented request
// parser the teacher's Application.Start and ParseRequest use.
type LocalTransport struct {
	id string

	mu       sync.Mutex
	listener net.Listener
	conns    map[string]net.Conn
	pending  chan *edgehttp.Request
}

// NewLocalTransport returns a LocalTransport identified by id, used in
// diagnostics and by GetID.
func NewLocalTransport(id string) *LocalTransport {
	return &LocalTransport{
		id:      id,
		conns:   make(map[string]net.Conn),
		pending: make(chan *edgehttp.Request, 64),
	}
}

// Start listens on port and spins up an accept loop that parses each
// connection into a Request and buffers it for ReceiveMessage.
func (t *LocalTransport) Start(ctx context.Context, port int) (bool, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false, err
	}
	t.mu.Lock()
	t.listener = listener
	t.mu.Unlock()

	go t.acceptLoop(ctx)
	return true, nil
}

func (t *LocalTransport) acceptLoop(ctx context.Context) {
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		go t.handleConn(ctx, conn)
	}
}

func (t *LocalTransport) handleConn(ctx context.Context, conn net.Conn) {
	req := parseRequest(conn)
	if req == nil {
		conn.Close()
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	req.Source = edgehttp.LocalServer

	t.mu.Lock()
	t.conns[req.RequestID] = conn
	t.mu.Unlock()

	select {
	case t.pending <- req:
	case <-ctx.Done():
		conn.Close()
	}
}

// ReceiveMessage returns the next buffered request, or nil if none is
// pending.
func (t *LocalTransport) ReceiveMessage(ctx context.Context) (*edgehttp.Request, error) {
	select {
	case req := <-t.pending:
		return req, nil
	default:
		return nil, nil
	}
}

// SendMessage writes wireText to the connection that produced
// requestID, then closes it; the core's Non-goals exclude persistent
// connections.
func (t *LocalTransport) SendMessage(ctx context.Context, requestID string, wireText string) (bool, error) {
	t.mu.Lock()
	conn, ok := t.conns[requestID]
	delete(t.conns, requestID)
	t.mu.Unlock()
	if !ok {
		return false, edgehttp.NewTransportFailureError(t.id, "SendMessage", errors.New("unknown request id"))
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(wireText)); err != nil {
		return false, edgehttp.NewTransportFailureError(t.id, "SendMessage", err)
	}
	return true, nil
}

// Stop closes the listener and any connections still awaiting a
// response. Idempotent.
func (t *LocalTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var err error
	if t.listener != nil {
		err = t.listener.Close()
		t.listener = nil
	}
	for id, conn := range t.conns {
		conn.Close()
		delete(t.conns, id)
	}
	return err
}

// GetID returns the configured transport identifier.
func (t *LocalTransport) GetID() string { return t.id }

// GetSource reports LocalServer.
func (t *LocalTransport) GetSource() edgehttp.Source { return edgehttp.LocalServer }

// parseRequest reads a minimal HTTP/1.1 request line, headers, and body
// off conn, the same line-oriented approach as the teacher's
// ParseRequest.
func parseRequest(conn net.Conn) *edgehttp.Request {
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	reader := bufio.NewReader(conn)

	methodBytes, err := reader.ReadBytes(' ')
	if err != nil || len(methodBytes) < 2 {
		return nil
	}
	method := edgehttp.ParseMethod(strings.TrimSpace(string(methodBytes)))

	pathBytes, err := reader.ReadBytes(' ')
	if err != nil || len(pathBytes) < 2 {
		return nil
	}
	path := strings.TrimSpace(string(pathBytes))

	if _, err := reader.ReadBytes('\n'); err != nil {
		return nil
	}

	headers := make(map[string]string)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil
		}
		trimmed := strings.TrimRight(string(line), "\r\n")
		if trimmed == "" {
			break
		}
		parts := strings.SplitN(trimmed, ":", 2)
		if len(parts) != 2 {
			continue
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	var body []byte
	if lengthText, ok := headers["Content-Length"]; ok {
		length, err := strconv.Atoi(lengthText)
		if err == nil && length > 0 {
			body = make([]byte, length)
			if _, err := io.ReadFull(reader, body); err != nil {
				return nil
			}
		}
	}

	return &edgehttp.Request{
		Method:  method,
		Path:    path,
		RawBody: string(body),
	}
}
