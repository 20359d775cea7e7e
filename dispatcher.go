package edgehttp

import (
	"encoding/json"
	"fmt"
)

// HandlerAdapter is a closure registered for one (method, pattern) pair.
// It receives the raw request body and the trie's variable bindings and
// produces a wire response, having already converted and serialized
// whatever typed envelope the underlying handler returned.
type HandlerAdapter func(rawBody string, variables map[string]string) (WireResponse, error)

// DispatcherOption configures a Dispatcher at construction time.
type DispatcherOption func(*Dispatcher)

// WithMethodNotAllowed selects the 405 behavior for a matched pattern
// with no handler for the requested method: if enabled, a pattern
// served by at least one other method answers MethodNotAllowed instead
// of NotFound. Default is the reference behavior, NotFound, since the
// original leaves this ambiguous (it returns null on no mapping).
func WithMethodNotAllowed(enabled bool) DispatcherOption {
	return func(d *Dispatcher) { d.methodNotAllowed = enabled }
}

// Dispatcher owns one handler map per HTTP verb and the trie shared
// across all of them. It is read-only and safe for concurrent Dispatch
// calls once registration is complete.
type Dispatcher struct {
	trie             *EndpointTrie
	mappings         map[Method]map[string]HandlerAdapter
	methodNotAllowed bool
}

// NewDispatcher returns an empty Dispatcher ready for Register calls.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		trie:     NewEndpointTrie(),
		mappings: make(map[Method]map[string]HandlerAdapter, len(Methods)),
	}
	for _, m := range Methods {
		d.mappings[m] = make(map[string]HandlerAdapter)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TypedHandler is the signature a caller of Register supplies: given the
// raw request body and the trie's string variable bindings, produce a
// typed envelope or an error.
type TypedHandler[T any] func(rawBody string, variables map[string]string) (Response[T], error)

// Register binds handler to (method, pattern), wrapping it in an adapter
// that serializes whatever envelope the handler returns, and inserts
// pattern into the trie immediately. A malformed pattern yields an
// InvalidPatternError and nothing is registered.
func Register[T any](d *Dispatcher, method Method, pattern string, handler TypedHandler[T]) error {
	if err := d.trie.Insert(pattern); err != nil {
		return err
	}
	d.mappings[method][pattern] = func(rawBody string, variables map[string]string) (WireResponse, error) {
		resp, err := handler(rawBody, variables)
		if err != nil {
			return WireResponse{}, err
		}
		return toWireResponse("", "", resp)
	}
	return nil
}

// Dispatch implements the five-step routing algorithm: trie lookup,
// method lookup, handler invocation, request-id stamping, and failure
// mapping to a 500 envelope (including recovery from a handler panic,
// mirroring the reference's catch-all exception branch).
func (d *Dispatcher) Dispatch(req *Request) WireResponse {
	result := d.trie.Search(req.Path)
	if !result.Found {
		body := notFoundBody(req.Path)
		resp := NotFound(body)
		wire, _ := toWireResponse(req.RequestID, req.Source, resp)
		return wire
	}

	handler, ok := d.mappings[req.Method][result.Pattern]
	if !ok {
		if d.methodNotAllowed && d.servedByOtherMethod(result.Pattern, req.Method) {
			resp := MethodNotAllowed(notFoundBody(req.Path))
			wire, _ := toWireResponse(req.RequestID, req.Source, resp)
			return wire
		}
		body := notFoundBody(req.Path)
		resp := NotFound(body)
		wire, _ := toWireResponse(req.RequestID, req.Source, resp)
		return wire
	}

	wire, err := d.invoke(handler, req.RawBody, result.Variables)
	if err != nil {
		wire = internalServerErrorWire(detailFor(err))
	}

	wire.RequestID = stampRequestID(wire.RequestID, req.RequestID)
	wire.Source = req.Source
	return wire
}

func (d *Dispatcher) invoke(handler HandlerAdapter, rawBody string, variables map[string]string) (wire WireResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewHandlerFailureError("Unknown exception occurred", fmt.Errorf("%v", r))
		}
	}()
	return handler(rawBody, variables)
}

func (d *Dispatcher) servedByOtherMethod(pattern string, method Method) bool {
	for m, mapping := range d.mappings {
		if m == method {
			continue
		}
		if _, ok := mapping[pattern]; ok {
			return true
		}
	}
	return false
}

func notFoundBody(path string) string {
	return errorBody("Not Found", "No pattern matched for URL: "+path)
}

func internalServerErrorWire(detail string) WireResponse {
	resp := InternalServerError(errorBody("Internal Server Error", detail))
	wire, _ := toWireResponse("", "", resp)
	return wire
}

// errorBody renders {"error","message"} via encoding/json so a path or
// panic detail containing quotes, backslashes, or newlines can't break
// the envelope's JSON shape.
func errorBody(kind, message string) string {
	doc := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{Error: kind, Message: message}
	out, err := json.Marshal(doc)
	if err != nil {
		return `{"error":"Internal Server Error","message":"failed to encode error body"}`
	}
	return string(out)
}

func detailFor(err error) string {
	if err == nil {
		return "Unknown exception occurred"
	}
	return err.Error()
}

func stampRequestID(current, incoming string) string {
	if current == "" && incoming != "" {
		return incoming
	}
	return current
}
