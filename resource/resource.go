package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/calegari/go-apitest/httpclient"
)

// fetchList GETs a collection, schema-validates every element, and decodes
// the result.
func fetchList[T any](ctx context.Context, c httpclient.Client, req *httpclient.Request, validate func(any) error) ([]T, error) {
	resp, err := c.Get(ctx, req)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := resp.JSON(&raw); err != nil {
		return nil, fmt.Errorf("decoding collection at %s: %w", req.Path, err)
	}

	out := make([]T, 0, len(raw))
	for i, item := range raw {
		if err := validate(item); err != nil {
			return nil, fmt.Errorf("element %d at %s: %w", i, req.Path, err)
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("decoding element %d at %s: %w", i, req.Path, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// fetchOne GETs a single entity, schema-validates it, and decodes it.
func fetchOne[T any](ctx context.Context, c httpclient.Client, req *httpclient.Request, validate func(any) error) (*T, error) {
	resp, err := c.Get(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](req.Path, resp, validate)
}

// writeOne issues a write verb and decodes the echoed entity. The demo
// backends echo created/updated records back, id included.
func writeOne[T any](ctx context.Context, c httpclient.Client, method string, req *httpclient.Request, validate func(any) error) (*T, error) {
	resp, err := c.Do(ctx, method, req)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](req.Path, resp, validate)
}

func decodeOne[T any](path string, resp *httpclient.Response, validate func(any) error) (*T, error) {
	if validate != nil {
		if err := validate(json.RawMessage(resp.Body)); err != nil {
			return nil, fmt.Errorf("entity at %s: %w", path, err)
		}
	}
	var v T
	if err := resp.JSON(&v); err != nil {
		return nil, fmt.Errorf("decoding entity at %s: %w", path, err)
	}
	return &v, nil
}
