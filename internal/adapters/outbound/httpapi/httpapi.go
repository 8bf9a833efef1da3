// Package httpapi holds the HTTP plumbing shared by the lookup and photo
// adapters.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// UserAgent identifies tradecheck to upstream APIs.
const UserAgent = "tradecheck/1.0 (vehicle trade-in assessment)"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// StatusError is a non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// Retryable reports whether err is worth retrying: transport failures, 429
// and 5xx responses. Context cancellation is never retried.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}

// GetJSON issues a GET and decodes a JSON body into out.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return do(client, req, out)
}

// GetBytes issues a GET and returns at most limit bytes of the body. Larger
// bodies are an error rather than silently truncated.
func GetBytes(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := send(client, req, "*/*")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", redact(req), err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%s exceeds %d bytes", redact(req), limit)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func do(client *http.Client, req *http.Request, out any) error {
	resp, err := send(client, req, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// send returns a 2xx response whose body the caller must close. Errors never
// carry the query string.
func send(client *http.Client, req *http.Request, accept string) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redact(req)
		}
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method: req.Method,
			URL:    redact(req),
			Code:   resp.StatusCode,
			Body:   string(bytes.TrimSpace(snippet)),
		}
	}
	return resp, nil
}

// redact drops the query string so API keys never reach logs.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}
