package edgehttp

import "context"

// Transport is the external collaborator that turns bytes on a wire
// into Requests and WireResponses back into bytes. The core never reads
// a socket itself; it only calls this interface.
type Transport interface {
	// Start begins listening on port, returning false if it could not
	// start.
	Start(ctx context.Context, port int) (bool, error)
	// Stop releases any resources Start acquired. Idempotent.
	Stop() error
	// ReceiveMessage returns the next pending request if one is
	// available, or nil if none is. Non-blocking is preferred; brief
	// blocking is tolerated.
	ReceiveMessage(ctx context.Context) (*Request, error)
	// SendMessage delivers wireText for requestID, reporting whether
	// the send succeeded.
	SendMessage(ctx context.Context, requestID string, wireText string) (bool, error)
	// GetID returns a stable identifier for this transport instance,
	// used in diagnostics.
	GetID() string
	// GetSource returns the Source tag this transport stamps onto every
	// request it produces.
	GetSource() Source
}
