package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestCloudTransportRoundTripOverTunnel(t *testing.T) {
	ct := NewCloudTransport("cloud-test")
	port := freePort(t)
	started, err := ct.Start(context.Background(), port)
	require.NoError(t, err)
	require.True(t, started)
	defer ct.Stop()

	time.Sleep(50 * time.Millisecond)

	url := fmt.Sprintf("ws://127.0.0.1:%d/tunnel", port)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	env := cloudEnvelope{RequestID: "req-1", Method: "GET", Path: "/ping"}
	require.NoError(t, conn.WriteJSON(env))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := ct.ReceiveMessage(context.Background())
		if got != nil {
			assert.Equal(t, "/ping", got.Path)
			ok, err := ct.SendMessage(context.Background(), got.RequestID, "HTTP/1.1 200 OK\r\n\r\npong")
			require.NoError(t, err)
			assert.True(t, ok)
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply cloudEnvelope
	require.NoError(t, json.Unmarshal(data, &reply))
	assert.Equal(t, "req-1", reply.RequestID)
	assert.Contains(t, reply.WireText, "pong")
}

func TestCloudTransportSendWithoutConnectionFails(t *testing.T) {
	ct := NewCloudTransport("cloud-test-2")
	_, err := ct.SendMessage(context.Background(), "req-1", "text")
	require.Error(t, err)
}
