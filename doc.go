// Package edgehttp implements the request-routing and dispatch core of a
// small dual-interface HTTP server framework for embedded and edge
// devices. A device accepts requests from two independent transports — a
// local transport and a cloud transport — and must route each request to
// a handler chosen by method and URL template, then return a response
// over the transport that received it.
//
// The package provides the pieces that turn a received request into a
// response: a single request queue, a URL-template routing trie with
// path-variable capture, a dispatcher that binds methods and templates to
// typed handlers, a response envelope with fluent builders and factories,
// and a two-lane response queue that preserves the originating
// transport.
//
// Transport implementations, the dependency-wiring mechanism, and
// handler business logic are deliberately external to this package; see
// the transport subpackage for reference Transport implementations.
//
// Example usage:
//
//	d := edgehttp.NewDispatcher()
//	edgehttp.Register(d, edgehttp.Get, "/api/user/{userId}", func(body string, vars map[string]string) (edgehttp.Response[User], error) {
//	    id, err := edgehttp.PathVar[int64](vars, "userId")
//	    if err != nil {
//	        return edgehttp.Response[User]{}, err
//	    }
//	    return edgehttp.Ok(lookupUser(id)), nil
//	})
package edgehttp
