package edgehttp

// Request is the inbound message handed to the core by a transport. The
// core only ever reads these five fields; how bytes become a Request is
// entirely the transport implementation's concern.
type Request struct {
	Method    Method
	Path      string
	RawBody   string
	RequestID string
	Source    Source
}
