package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kjmorgan/edgehttp"
)

type user struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// registerDemoRoutes wires the handful of routes that exercise the
// dispatcher's main behaviors end to end: variable capture and type
// conversion, JSON body extraction, URL-decoding, multi-variable
// capture, and panic-to-500 mapping. pool is nil unless a database URL
// was configured, in which case /health reports connectivity.
func registerDemoRoutes(d *edgehttp.Dispatcher, pool *pgxpool.Pool) error {
	if err := edgehttp.Register(d, edgehttp.Get, "/api/user/{userId}", getUser); err != nil {
		return err
	}
	if err := edgehttp.Register(d, edgehttp.Post, "/api/users", createUser); err != nil {
		return err
	}
	if err := edgehttp.Register(d, edgehttp.Get, "/files/{name}", getFile); err != nil {
		return err
	}
	if err := edgehttp.Register(d, edgehttp.Get, "/hello/{a}/{b}/{c}", greetThree); err != nil {
		return err
	}
	if err := edgehttp.Register(d, edgehttp.Post, "/compute", compute); err != nil {
		return err
	}
	if err := edgehttp.Register(d, edgehttp.Get, "/health", healthCheck(pool)); err != nil {
		return err
	}
	return nil
}

func getUser(rawBody string, vars map[string]string) (edgehttp.Response[user], error) {
	id, err := edgehttp.PathVar[int64](vars, "userId")
	if err != nil {
		return edgehttp.Response[user]{}, err
	}
	return edgehttp.Ok(user{ID: id, Name: fmt.Sprintf("user-%d", id)}), nil
}

func createUser(rawBody string, vars map[string]string) (edgehttp.Response[user], error) {
	obj, err := edgehttp.ParseJsonObject([]byte(rawBody))
	if err != nil {
		return edgehttp.Response[user]{}, err
	}
	name, err := obj.GetString("name")
	if err != nil {
		return edgehttp.Response[user]{}, err
	}
	return edgehttp.Created(user{ID: 1, Name: name}), nil
}

func getFile(rawBody string, vars map[string]string) (edgehttp.Response[string], error) {
	name, err := edgehttp.PathVar[string](vars, "name")
	if err != nil {
		return edgehttp.Response[string]{}, err
	}
	return edgehttp.Ok(fmt.Sprintf("contents of %s", name)), nil
}

func greetThree(rawBody string, vars map[string]string) (edgehttp.Response[string], error) {
	a, err := edgehttp.PathVar[string](vars, "a")
	if err != nil {
		return edgehttp.Response[string]{}, err
	}
	b, err := edgehttp.PathVar[string](vars, "b")
	if err != nil {
		return edgehttp.Response[string]{}, err
	}
	c, err := edgehttp.PathVar[string](vars, "c")
	if err != nil {
		return edgehttp.Response[string]{}, err
	}
	return edgehttp.Ok(fmt.Sprintf("hello %s, %s, and %s", a, b, c)), nil
}

// compute deliberately panics (integer division by zero) when divisor is
// 0 to demonstrate the dispatcher's panic-to-500 mapping; a malformed
// body is returned as an error instead.
func compute(rawBody string, vars map[string]string) (edgehttp.Response[int64], error) {
	obj, err := edgehttp.ParseJsonObject([]byte(rawBody))
	if err != nil {
		return edgehttp.Response[int64]{}, err
	}
	divisor, err := obj.GetInt64("divisor")
	if err != nil {
		return edgehttp.Response[int64]{}, err
	}
	dividend, err := obj.GetInt64("dividend")
	if err != nil {
		return edgehttp.Response[int64]{}, err
	}
	return edgehttp.Ok(dividend / divisor), nil
}

func healthCheck(pool *pgxpool.Pool) edgehttp.TypedHandler[string] {
	return func(rawBody string, vars map[string]string) (edgehttp.Response[string], error) {
		if pool == nil {
			return edgehttp.Ok("ok: no database configured"), nil
		}
		if err := pool.Ping(context.Background()); err != nil {
			return edgehttp.ServiceUnavailable(fmt.Sprintf("database unreachable: %v", err)), nil
		}
		return edgehttp.Ok("ok"), nil
	}
}
