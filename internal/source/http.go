package source

import (
	"bufio"
	"context"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "pullview/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 8 << 20
)

// ErrTooLarge is returned when a response body exceeds the size limit.
var ErrTooLarge = errors.New("response too large")

// HTTP fetches a document over HTTP. JSON arrays of strings are decoded
// into lines; any other body is split on newlines.
type HTTP struct {
	url       *url.URL
	http      *http.Client
	userAgent string
	maxBody   int64
}

// NewHTTP builds an HTTP source for rawURL.
func NewHTTP(rawURL string) (*HTTP, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse source url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse source url %q: missing host", rawURL)
	}
	u.Fragment = ""
	return &HTTP{
		url: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		maxBody:   maxBodyBytes,
	}, nil
}

func (h *HTTP) Name() string {
	return h.url.String()
}

func (h *HTTP) Fetch(ctx context.Context) ([]string, error) {
	if h == nil {
		return nil, fmt.Errorf("source is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.5")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("source %s returned status %d", h.url.Redacted(), resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > h.maxBody {
		return nil, fmt.Errorf("source %s: %w (limit %d bytes)", h.url.Redacted(), ErrTooLarge, h.maxBody)
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return lines, nil
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return lines, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
