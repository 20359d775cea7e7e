package edgehttp

import "strings"

// WireResponse is the serialized artifact handed back to a transport.
// Its RequestID and Source must match the request that produced it.
type WireResponse struct {
	RequestID     string
	Source        Source
	StatusCode    StatusCode
	StatusMessage string
	Headers       map[string]string
	BodyText      string
}

// NewWireResponse builds a WireResponse from a status and body text,
// defaulting StatusMessage to the canonical reason phrase.
func NewWireResponse(requestID string, source Source, status StatusCode, headers map[string]string, body string) WireResponse {
	return WireResponse{
		RequestID:     requestID,
		Source:        source,
		StatusCode:    status,
		StatusMessage: ReasonPhrase(status),
		Headers:       headers,
		BodyText:      body,
	}
}

// ToHttpString renders the response as an HTTP/1.1 status line, headers,
// a blank line, and the body — the minimal framing a conforming parser
// can recover every field from.
func (w WireResponse) ToHttpString() string {
	var b strings.Builder
	b.WriteString("HTTP/1.1 ")
	b.WriteString(StatusToString(w.StatusCode))
	b.WriteByte(' ')
	b.WriteString(w.StatusMessage)
	b.WriteString("\r\n")
	for name, value := range w.Headers {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(w.BodyText)
	return b.String()
}
