package edgehttp

// Source tags a request or response with the transport that produced or
// owns it, so a response can be routed back to the lane it arrived on.
type Source string

const (
	// LocalServer identifies the on-device/LAN transport.
	LocalServer Source = "LocalServer"
	// CloudServer identifies the remote-tunnel transport.
	CloudServer Source = "CloudServer"
)
