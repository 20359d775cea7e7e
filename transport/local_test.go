package transport

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTransportParsesRequestAndRespondsOverSameConnection(t *testing.T) {
	lt := NewLocalTransport("local-test")
	started, err := lt.Start(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, started)
	defer lt.Stop()

	addr := lt.listener.Addr().String()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET /api/status HTTP/1.1\r\nHost: test\r\n\r\n"))
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := lt.ReceiveMessage(context.Background())
		if got != nil {
			assert.Equal(t, "/api/status", got.Path)
			ok, err := lt.SendMessage(context.Background(), got.RequestID, "HTTP/1.1 200 OK\r\n\r\nhi")
			require.NoError(t, err)
			assert.True(t, ok)
			break
		}
		time.Sleep(time.Millisecond)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "200 OK")
}

func TestLocalTransportSendMessageUnknownRequestID(t *testing.T) {
	lt := NewLocalTransport("local-test-2")
	_, err := lt.SendMessage(context.Background(), "unknown", "text")
	require.Error(t, err)
}
