package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPicksSource(t *testing.T) {
	src, err := Open("https://example.com/feed", 10)
	require.NoError(t, err)
	assert.IsType(t, &HTTP{}, src)
	assert.Equal(t, "https://example.com/feed", src.Name())

	src, err = Open("  /tmp/feed.txt ", 10)
	require.NoError(t, err)
	require.IsType(t, &File{}, src)
	assert.Equal(t, "/tmp/feed.txt", src.Name())

	_, err = Open("ftp://example.com/feed", 10)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Open("   ", 10)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFileFetchTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.txt")
	var b strings.Builder
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	tests := []struct {
		tail int
		want []string
	}{
		{3, []string{"line 5", "line 6", "line 7"}},
		{7, []string{"line 1", "line 2", "line 3", "line 4", "line 5", "line 6", "line 7"}},
		{20, []string{"line 1", "line 2", "line 3", "line 4", "line 5", "line 6", "line 7"}},
		{0, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("tail=%d", tt.tail), func(t *testing.T) {
			got, err := (&File{Path: path, Tail: tt.tail}).Fetch(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileFetchMissingIsEmpty(t *testing.T) {
	got, err := (&File{Path: filepath.Join(t.TempDir(), "nope"), Tail: 5}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileFetchDirectoryFails(t *testing.T) {
	_, err := (&File{Path: t.TempDir(), Tail: 5}).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read feed")
}

func TestHTTPFetchText(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("alpha\nbeta\n"))
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL + "/feed#frag")
	require.NoError(t, err)
	lines, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, lines)
	assert.Equal(t, defaultUserAgent, gotUserAgent)
	assert.NotContains(t, src.Name(), "frag")
}

func TestHTTPFetchJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]string{"one", "two", "three"})
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL)
	require.NoError(t, err)
	lines, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestHTTPFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad-json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		default:
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL + "/down")
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")

	src, err = NewHTTP(server.URL + "/bad-json")
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestHTTPFetchHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPRejectsMissingHost(t *testing.T) {
	_, err := NewHTTP("http://")
	assert.Error(t, err)
}

func TestHTTPFetchRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/json" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`["aaaaaaaa","bbbbbbbb"]`))
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 32)))
	}))
	defer server.Close()

	for _, path := range []string{"/text", "/json"} {
		t.Run(path, func(t *testing.T) {
			src, err := NewHTTP(server.URL + path)
			require.NoError(t, err)
			src.maxBody = 16

			lines, err := src.Fetch(context.Background())
			require.ErrorIs(t, err, ErrTooLarge)
			assert.Nil(t, lines)
		})
	}
}

func TestHTTPFetchAcceptsBodyAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789abcdef"))
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL)
	require.NoError(t, err)
	src.maxBody = 16

	lines, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0123456789abcdef"}, lines)
}
