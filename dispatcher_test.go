package edgehttp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Message string `json:"message"`
}

func TestDispatcherRoutesByMethodAndPattern(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, Register(d, Get, "/api/user/{userId}", func(rawBody string, vars map[string]string) (Response[greeting], error) {
		if _, err := PathVar[int64](vars, "userId"); err != nil {
			return Response[greeting]{}, err
		}
		return Ok(greeting{Message: "hello"}), nil
	}))

	wire := d.Dispatch(&Request{Method: Get, Path: "/api/user/7", RequestID: "r1", Source: LocalServer})
	assert.Equal(t, StatusOK, wire.StatusCode)
	assert.Equal(t, "r1", wire.RequestID)
	assert.Equal(t, LocalServer, wire.Source)
	assert.Contains(t, wire.BodyText, "hello")
}

func TestDispatcherUnmatchedPathIs404(t *testing.T) {
	d := NewDispatcher()
	wire := d.Dispatch(&Request{Method: Get, Path: "/nope", RequestID: "r2", Source: LocalServer})
	assert.Equal(t, StatusNotFound, wire.StatusCode)
	assert.Equal(t, "r2", wire.RequestID)
}

func TestDispatcherUnmappedMethodDefaultsTo404(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, Register(d, Get, "/api/status", func(rawBody string, vars map[string]string) (Response[Unit], error) {
		return OkUnit(), nil
	}))

	wire := d.Dispatch(&Request{Method: Post, Path: "/api/status", RequestID: "r3", Source: LocalServer})
	assert.Equal(t, StatusNotFound, wire.StatusCode)
}

func TestDispatcherMethodNotAllowedOption(t *testing.T) {
	d := NewDispatcher(WithMethodNotAllowed(true))
	require.NoError(t, Register(d, Get, "/api/status", func(rawBody string, vars map[string]string) (Response[Unit], error) {
		return OkUnit(), nil
	}))

	wire := d.Dispatch(&Request{Method: Post, Path: "/api/status", RequestID: "r4", Source: LocalServer})
	assert.Equal(t, StatusMethodNotAllowed, wire.StatusCode)
}

func TestDispatcherHandlerErrorMapsTo500(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, Register(d, Get, "/boom", func(rawBody string, vars map[string]string) (Response[Unit], error) {
		return Response[Unit]{}, errors.New("handler exploded")
	}))

	wire := d.Dispatch(&Request{Method: Get, Path: "/boom", RequestID: "r5", Source: CloudServer})
	assert.Equal(t, StatusInternalServerError, wire.StatusCode)
	assert.Equal(t, CloudServer, wire.Source)
	assert.Contains(t, wire.BodyText, "handler exploded")
}

func TestDispatcherHandlerPanicRecoversTo500(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, Register(d, Get, "/panic", func(rawBody string, vars map[string]string) (Response[Unit], error) {
		panic("unexpected")
	}))

	wire := d.Dispatch(&Request{Method: Get, Path: "/panic", RequestID: "r6", Source: LocalServer})
	assert.Equal(t, StatusInternalServerError, wire.StatusCode)
	assert.Contains(t, wire.BodyText, "Unknown exception occurred")
}

func TestDispatcherInvalidPatternRegistrationFails(t *testing.T) {
	d := NewDispatcher()
	err := Register(d, Get, "/bad/{id", func(rawBody string, vars map[string]string) (Response[Unit], error) {
		return OkUnit(), nil
	})
	require.Error(t, err)
	var invalid *InvalidPatternError
	assert.ErrorAs(t, err, &invalid)
}

func TestDispatcherStampsRequestIDWhenHandlerOmitsIt(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, Register(d, Get, "/ping", func(rawBody string, vars map[string]string) (Response[string], error) {
		return Ok("pong"), nil
	}))

	wire := d.Dispatch(&Request{Method: Get, Path: "/ping", RequestID: "incoming-id", Source: LocalServer})
	assert.Equal(t, "incoming-id", wire.RequestID)
}
