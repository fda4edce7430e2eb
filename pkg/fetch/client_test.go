package fetch

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/httputil"
)

const body = `<h3>Initializing Mini Apps</h3>`

func newTestClient(t *testing.T, srv *httptest.Server, withCache bool) *Client {
	t.Helper()
	var cache *httputil.Cache
	if withCache {
		var err error
		cache, err = httputil.NewCache(t.TempDir(), time.Hour)
		if err != nil {
			t.Fatal(err)
		}
	}
	return NewClient(cache, WithHTTPClient(srv.Client()), WithRetry(3, time.Millisecond))
}

func TestPageServedFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, true)
	for range 2 {
		p, err := c.Page(context.Background(), srv.URL, false)
		if err != nil {
			t.Fatalf("Page() error: %v", err)
		}
		if p.Body != body || p.URL != srv.URL {
			t.Errorf("Page() = %+v", p)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := c.Page(context.Background(), srv.URL, true); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh should bypass the cache; hits = %d", hits.Load())
	}
}

func TestPageWithoutCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, false)
	for range 2 {
		if _, err := c.Page(context.Background(), srv.URL, false); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", hits.Load())
	}
}

func TestPageRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p, err := newTestClient(t, srv, false).Page(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("Page() error: %v", err)
	}
	if p.Body != body {
		t.Errorf("Body = %q", p.Body)
	}
	if hits.Load() != 3 {
		t.Errorf("hits = %d, want 3", hits.Load())
	}
}

func TestPageErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     errors.Code
		sentinel error
		hits     int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound, ErrNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork, ErrNetwork, 1},
		{"always failing", http.StatusServiceUnavailable, errors.ErrCodeNetwork, ErrNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv, true).Page(context.Background(), srv.URL, false)
			if !errors.Is(err, tt.code) {
				t.Errorf("Page() error = %v, want code %v", err, tt.code)
			}
			if !stderrors.Is(err, tt.sentinel) {
				t.Errorf("Page() error = %v, want %v in chain", err, tt.sentinel)
			}
			if hits.Load() != tt.hits {
				t.Errorf("hits = %d, want %d", hits.Load(), tt.hits)
			}
		})
	}
}

func TestPageSizeLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		limit   int64
		wantErr bool
	}{
		{"exact fit", int64(len(body)), false},
		{"one byte over", int64(len(body)) - 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits.Store(0)
			c := NewClient(nil, WithHTTPClient(srv.Client()), WithRetry(3, time.Millisecond), WithMaxBody(tt.limit))
			p, err := c.Page(context.Background(), srv.URL, false)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Page() error: %v", err)
				}
				if p.Body != body {
					t.Errorf("Body = %q, want %q", p.Body, body)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeNetwork) {
				t.Fatalf("Page() error = %v, want NETWORK_ERROR", err)
			}
			if !strings.Contains(err.Error(), "larger than") {
				t.Errorf("error should explain the limit: %v", err)
			}
			if hits.Load() != 1 {
				t.Errorf("oversized page retried: hits = %d", hits.Load())
			}
		})
	}
}

func TestPageInvalidURL(t *testing.T) {
	c := NewClient(nil)
	if _, err := c.Page(context.Background(), "ftp://example.com", false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Page() error = %v, want INVALID_INPUT", err)
	}
}

func TestGetTextSendsHeaders(t *testing.T) {
	var ua, extra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		extra = r.Header.Get("Accept-Language")
	}))
	defer srv.Close()

	c := NewClient(nil, WithHTTPClient(srv.Client()), WithHeader("Accept-Language", "en"))
	if _, err := c.GetText(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(ua, "twatypes/") {
		t.Errorf("User-Agent = %q", ua)
	}
	if extra != "en" {
		t.Errorf("Accept-Language = %q", extra)
	}
}

func TestGetTextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(nil, WithHTTPClient(srv.Client())).GetText(ctx, srv.URL)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("GetText() error = %v, want context.Canceled", err)
	}
	if httputil.IsRetryable(err) {
		t.Error("a canceled request must not be retried")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		retryable bool
		ok        bool
	}{
		{200, false, true},
		{404, false, false},
		{429, true, false},
		{500, true, false},
		{400, false, false},
	}
	for _, tt := range tests {
		err := checkStatus(tt.code)
		if (err == nil) != tt.ok {
			t.Errorf("checkStatus(%d) = %v", tt.code, err)
		}
		if httputil.IsRetryable(err) != tt.retryable {
			t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, !tt.retryable, tt.retryable)
		}
	}
}
