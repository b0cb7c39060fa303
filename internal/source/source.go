// Package source resolves image sources: local files, http(s) URLs and "-"
// for standard input.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// StatusError is returned when a URL answers with anything but 200 OK.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source: GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Opener opens sources. The zero value uses http.DefaultClient and os.Stdin.
type Opener struct {
	Client *http.Client
	Stdin  io.Reader
}

// Open tries src as a file first and as a URL second, like most image
// tools do. "-" reads standard input.
func (o *Opener) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if src == "-" {
		return io.NopCloser(o.stdin()), nil
	}

	// Is it a file?
	file, fileErr := os.Open(src)
	if fileErr == nil {
		return file, nil
	}

	// Is it a url?
	if !IsURL(src) {
		return nil, fileErr
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: src, Code: resp.StatusCode}
	}
	return resp.Body, nil
}

// IsURL reports whether src is an absolute http or https URL.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (o *Opener) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return http.DefaultClient
}

func (o *Opener) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}
