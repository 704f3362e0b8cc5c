package httpclient

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calegari/go-apitest/logger"
)

const (
	testContentTypeHdr = "Content-Type"
	testJSONType       = "application/json"
	testUserAgent      = "User-Agent"
)

type roundTripperFunc func(*nethttp.Request) (*nethttp.Response, error)

func (f roundTripperFunc) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	return f(req)
}

func newTestClient(serverURL string) Client {
	return New(logger.Nop(), serverURL)
}

func TestClientHTTPMethods(t *testing.T) {
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				assert.Equal(t, method, r.Method)
				assert.Equal(t, "/widgets", r.URL.Path)
				w.WriteHeader(nethttp.StatusOK)
				w.Write([]byte(`{"status":"ok"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			req := &Request{Path: "/widgets"}

			ctx := context.Background()
			var resp *Response
			var err error

			switch method {
			case "GET":
				resp, err = client.Get(ctx, req)
			case "POST":
				resp, err = client.Post(ctx, req)
			case "PUT":
				resp, err = client.Put(ctx, req)
			case "PATCH":
				resp, err = client.Patch(ctx, req)
			case "DELETE":
				resp, err = client.Delete(ctx, req)
			}

			require.NoError(t, err)
			assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
			assert.Equal(t, `{"status":"ok"}`, string(resp.Body))
			assert.GreaterOrEqual(t, resp.Duration, time.Duration(0))
		})
	}
}

func TestClientRequestValidation(t *testing.T) {
	client := newTestClient("http://localhost")
	ctx := context.Background()

	t.Run("nil request", func(t *testing.T) {
		_, err := client.Get(ctx, nil)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := client.Get(ctx, &Request{})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
	})

	t.Run("unencodable body", func(t *testing.T) {
		_, err := client.Post(ctx, &Request{Path: "/x", Body: func() {}})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
	})
}

func TestClientHeaderMerge(t *testing.T) {
	t.Run("per-call headers override defaults", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "2", r.Header.Get("A"))
			assert.Equal(t, "3", r.Header.Get("B"))
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := NewBuilder(logger.Nop()).
			WithBaseURL(server.URL).
			WithDefaultHeader("A", "1").
			Build()

		req := &Request{
			Path:    "/merge",
			Headers: map[string]string{"A": "2", "B": "3"},
		}

		_, err := client.Get(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("default headers sent when no overrides", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "harness-agent", r.Header.Get(testUserAgent))
			assert.Equal(t, testJSONType, r.Header.Get("Accept"))
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := NewBuilder(logger.Nop()).
			WithBaseURL(server.URL).
			WithDefaultHeader(testUserAgent, "harness-agent").
			WithDefaultHeader("Accept", testJSONType).
			Build()

		_, err := client.Get(context.Background(), &Request{Path: "/defaults"})
		require.NoError(t, err)
	})
}

func TestClientBearerToken(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		seenAuth = r.Header.Get(HeaderAuthorization)
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	t.Run("builder token", func(t *testing.T) {
		client := NewBuilder(logger.Nop()).
			WithBaseURL(server.URL).
			WithBearerToken("abc123").
			Build()

		_, err := client.Get(context.Background(), &Request{Path: "/secure"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc123", seenAuth)
	})

	t.Run("setter replaces token for subsequent calls", func(t *testing.T) {
		client := newTestClient(server.URL)
		client.SetBearerToken("first")

		_, err := client.Get(context.Background(), &Request{Path: "/secure"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer first", seenAuth)

		client.SetBearerToken("second")
		_, err = client.Get(context.Background(), &Request{Path: "/secure"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer second", seenAuth)
	})

	t.Run("SetDefaultHeader applies to subsequent calls", func(t *testing.T) {
		var seen string
		hdrServer := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			seen = r.Header.Get("X-Suite")
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer hdrServer.Close()

		client := newTestClient(hdrServer.URL)
		client.SetDefaultHeader("X-Suite", "smoke")

		_, err := client.Get(context.Background(), &Request{Path: "/any"})
		require.NoError(t, err)
		assert.Equal(t, "smoke", seen)
	})
}

func TestClientBodyEncoding(t *testing.T) {
	t.Run("nil body on write verb sends empty object", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "{}", string(body))
			assert.Equal(t, testJSONType, r.Header.Get(testContentTypeHdr))
			w.WriteHeader(nethttp.StatusCreated)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		resp, err := client.Post(context.Background(), &Request{Path: "/things"})
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	})

	t.Run("structured body is JSON-encoded", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"name":"x","count":2}`, string(body))
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Put(context.Background(), &Request{
			Path: "/things/1",
			Body: map[string]any{"name": "x", "count": 2},
		})
		require.NoError(t, err)
	})

	t.Run("nil body on GET sends no payload", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.Empty(t, body)
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Get(context.Background(), &Request{Path: "/things"})
		require.NoError(t, err)
	})

	t.Run("explicit content type is not overridden", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "application/json; charset=utf-8", r.Header.Get(testContentTypeHdr))
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Post(context.Background(), &Request{
			Path:    "/things",
			Headers: map[string]string{testContentTypeHdr: "application/json; charset=utf-8"},
			Body:    map[string]any{"a": 1},
		})
		require.NoError(t, err)
	})
}

func TestClientQueryEncoding(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("_page"))
		assert.Equal(t, "10", r.URL.Query().Get("_limit"))
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	q := url.Values{}
	q.Set("_page", "1")
	q.Set("_limit", "10")

	_, err := client.Get(context.Background(), &Request{Path: "/posts", Query: q})
	require.NoError(t, err)
}

func TestClientURLJoin(t *testing.T) {
	var seenPath string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		seenPath = r.URL.Path
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	t.Run("slash on both sides", func(t *testing.T) {
		client := newTestClient(server.URL + "/")
		_, err := client.Get(context.Background(), &Request{Path: "/users"})
		require.NoError(t, err)
		assert.Equal(t, "/users", seenPath)
	})

	t.Run("slash on neither side", func(t *testing.T) {
		client := newTestClient(server.URL)
		_, err := client.Get(context.Background(), &Request{Path: "users"})
		require.NoError(t, err)
		assert.Equal(t, "/users", seenPath)
	})
}

func TestClientErrorClassification(t *testing.T) {
	t.Run("4xx returns client error with attached response", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			w.WriteHeader(nethttp.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		resp, err := client.Get(context.Background(), &Request{Path: "/users/9999"})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindClientError))
		assert.True(t, IsStatus(err, nethttp.StatusNotFound))

		attached, ok := ResponseFrom(err)
		require.True(t, ok)
		assert.Equal(t, nethttp.StatusNotFound, attached.StatusCode)
		assert.Equal(t, `{"error":"not found"}`, string(attached.Body))
		assert.GreaterOrEqual(t, attached.Duration, time.Duration(0))

		// The envelope is also returned directly alongside the error.
		require.NotNil(t, resp)
		assert.Equal(t, attached, resp)
	})

	t.Run("5xx returns server error with attached response", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			w.WriteHeader(nethttp.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Get(context.Background(), &Request{Path: "/boom"})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindServerError))
		assert.True(t, IsStatus(err, nethttp.StatusInternalServerError))
	})

	t.Run("timeout carries no response", func(t *testing.T) {
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := NewBuilder(logger.Nop()).
			WithBaseURL(server.URL).
			WithTimeout(10 * time.Millisecond).
			Build()

		_, err := client.Get(context.Background(), &Request{Path: "/slow"})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindTimeout))
		_, ok := ResponseFrom(err)
		assert.False(t, ok)
	})

	t.Run("connectivity failure is a network error", func(t *testing.T) {
		client := NewBuilder(logger.Nop()).
			WithBaseURL("http://example.invalid").
			WithTransport(roundTripperFunc(func(req *nethttp.Request) (*nethttp.Response, error) {
				return nil, fmt.Errorf("connection refused to %s", req.URL.Host)
			})).
			Build()

		_, err := client.Get(context.Background(), &Request{Path: "/any"})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindNetwork))
		_, ok := ResponseFrom(err)
		assert.False(t, ok)
	})
}

func TestClientDurationReflectsWallClock(t *testing.T) {
	const delay = 20 * time.Millisecond
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		time.Sleep(delay)
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Get(context.Background(), &Request{Path: "/timed"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.Duration, delay)
}

func TestClientRequestID(t *testing.T) {
	t.Run("generated when absent", func(t *testing.T) {
		var seen string
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			seen = r.Header.Get(HeaderRequestID)
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Get(context.Background(), &Request{Path: "/traced"})
		require.NoError(t, err)
		assert.Len(t, seen, 36) // UUID format
	})

	t.Run("caller value preserved", func(t *testing.T) {
		var seen string
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			seen = r.Header.Get(HeaderRequestID)
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Get(context.Background(), &Request{
			Path:    "/traced",
			Headers: map[string]string{HeaderRequestID: "fixed-id"},
		})
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", seen)
	})

	t.Run("disabled via builder", func(t *testing.T) {
		var seen string
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			seen = r.Header.Get(HeaderRequestID)
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := NewBuilder(logger.Nop()).
			WithBaseURL(server.URL).
			WithRequestID(false).
			Build()

		_, err := client.Get(context.Background(), &Request{Path: "/untraced"})
		require.NoError(t, err)
		assert.Empty(t, seen)
	})
}

func TestClientRateLimit(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	client := NewBuilder(logger.Nop()).
		WithBaseURL(server.URL).
		WithRateLimit(50, 1).
		Build()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), &Request{Path: "/paced"})
		require.NoError(t, err)
	}
	// Burst of 1 at 50 rps: the second and third calls wait ~20ms each.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestResponseJSON(t *testing.T) {
	t.Run("decodes body", func(t *testing.T) {
		resp := &Response{Body: []byte(`{"id":1,"title":"hello"}`)}
		var out struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		}
		require.NoError(t, resp.JSON(&out))
		assert.Equal(t, 1, out.ID)
		assert.Equal(t, "hello", out.Title)
	})

	t.Run("empty body is an error", func(t *testing.T) {
		resp := &Response{}
		var out map[string]any
		assert.Error(t, resp.JSON(&out))
	})
}
