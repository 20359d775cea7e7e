package edgehttp

import "strings"

// GroupedRoute is a route definition deferred until a RouteGroup is
// mounted with AddRouteGroup, at which point it is registered against a
// Dispatcher under the group's prefix. Each GroupedRoute closes over
// its own typed handler, the way each Register call closes over its own
// T at registration.
type GroupedRoute struct {
	method Method
	path   string
	bind   func(d *Dispatcher, fullPath string) error
}

func newGroupedRoute[T any](method Method, path string, handler TypedHandler[T]) GroupedRoute {
	return GroupedRoute{
		method: method,
		path:   path,
		bind: func(d *Dispatcher, fullPath string) error {
			return Register(d, method, fullPath, handler)
		},
	}
}

// GetRoute creates a GET route configuration for use in a RouteGroup.
func GetRoute[T any](path string, handler TypedHandler[T]) GroupedRoute {
	return newGroupedRoute(Get, path, handler)
}

// PostRoute creates a POST route configuration for use in a RouteGroup.
func PostRoute[T any](path string, handler TypedHandler[T]) GroupedRoute {
	return newGroupedRoute(Post, path, handler)
}

// PutRoute creates a PUT route configuration for use in a RouteGroup.
func PutRoute[T any](path string, handler TypedHandler[T]) GroupedRoute {
	return newGroupedRoute(Put, path, handler)
}

// PatchRoute creates a PATCH route configuration for use in a RouteGroup.
func PatchRoute[T any](path string, handler TypedHandler[T]) GroupedRoute {
	return newGroupedRoute(Patch, path, handler)
}

// DeleteRoute creates a DELETE route configuration for use in a RouteGroup.
func DeleteRoute[T any](path string, handler TypedHandler[T]) GroupedRoute {
	return newGroupedRoute(Delete, path, handler)
}

// RouteGroup is a batch of GroupedRoute definitions meant to be mounted
// together under a common prefix.
type RouteGroup struct {
	Routes []GroupedRoute
}

// NewRouteGroup builds a RouteGroup from a variable number of
// GroupedRoute definitions.
func NewRouteGroup(routes ...GroupedRoute) *RouteGroup {
	return &RouteGroup{Routes: routes}
}

// AddRouteGroup registers every route in rg against d under prefix,
// normalizing prefix to start and end with "/" and stripping any
// leading "/" from each route's own path so mounting never produces a
// double slash.
func AddRouteGroup(d *Dispatcher, prefix string, rg *RouteGroup) error {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	for _, route := range rg.Routes {
		path := strings.TrimPrefix(route.path, "/")
		if err := route.bind(d, prefix+path); err != nil {
			return err
		}
	}
	return nil
}
