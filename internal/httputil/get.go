// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helper shared by the fetch backends.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paperdb/pkg/types"
)

// MaxBodyBytes caps how much of a response body is read. Tests lower it.
var MaxBodyBytes int64 = 64 << 20

// ErrBodyTooLarge is returned when a response body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paperdb/0.1"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// NewClient builds an http.Client from cfg, applying the default timeout
// when cfg.Timeout is zero.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Response is a fully read response body with its content type.
type Response struct {
	Body        []byte
	ContentType string
}

// IsHTML reports whether the server answered with an HTML page. Public
// export endpoints do this when they redirect to a sign-in page.
func (r Response) IsHTML() bool {
	return strings.HasPrefix(strings.ToLower(r.ContentType), "text/html")
}

// Get issues a single GET request and reads the whole body. There is no
// retry: transport errors are returned unchanged and non-2xx responses are
// returned as *StatusError after the body is drained. A body longer than
// MaxBodyBytes fails with ErrBodyTooLarge rather than being truncated.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, fmt.Errorf("building request: %w", err)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		return Response{}, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return Response{}, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > MaxBodyBytes {
		return Response{}, fmt.Errorf("GET %s: %w (limit %d bytes)", url, ErrBodyTooLarge, MaxBodyBytes)
	}

	return Response{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}
