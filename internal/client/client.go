/*
Package client talks to the notes REST API.

A client either sends real HTTP requests (NewWithURL) or serves them
in-process through an http.Handler (NewWithHandler), which is what the tests
use.
*/
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"notes/internal/note"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("note not found")

// StatusError is returned for any other unexpected status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notes api: status %d: %s", e.Status, e.Message)
}

// Client is cheap to copy. With* methods return modified copies.
type Client struct {
	handler    http.Handler
	httpClient *http.Client
	url        string
	token      string
}

func NewWithURL(baseURL string) Client {
	return Client{
		url:        strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func NewWithHandler(h http.Handler) Client {
	return Client{handler: h}
}

// WithToken returns a client that sends token as a bearer ID token.
func (c Client) WithToken(token string) Client {
	c.token = token
	return c
}

func (c Client) List(ctx context.Context, email string) ([]note.Note, error) {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	var out []note.Note
	err := c.do(ctx, http.MethodGet, "/api/notes", q, nil, &out)
	return out, err
}

func (c Client) Create(ctx context.Context, text, email string) (note.Note, error) {
	var out note.Note
	err := c.do(ctx, http.MethodPost, "/api/notes", nil, writeBody{Text: text, Email: email}, &out)
	return out, err
}

func (c Client) Update(ctx context.Context, id, text, email string) (note.Note, error) {
	var out note.Note
	err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), nil, writeBody{Text: text, Email: email}, &out)
	return out, err
}

func (c Client) Delete(ctx context.Context, id, email string) error {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), q, nil, nil)
}

type writeBody struct {
	Text  string `json:"text"`
	Email string `json:"email,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c Client) do(ctx context.Context, method, path string, q url.Values, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		j, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(j)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	r, err := http.NewRequestWithContext(ctx, method, c.url+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}

	var status int
	var resBody []byte
	if c.handler != nil {
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, r)
		status = rec.Code
		resBody = rec.Body.Bytes()
	} else {
		res, err := c.httpClient.Do(r)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer res.Body.Close()
		status = res.StatusCode
		resBody, err = io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("%s %s: read body: %w", method, path, err)
		}
	}

	if status == http.StatusNotFound {
		return ErrNotFound
	}
	if status < 200 || status > 299 {
		msg := strings.TrimSpace(string(resBody))
		var eb errorBody
		if json.Unmarshal(resBody, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return &StatusError{Status: status, Message: msg}
	}

	if result != nil && len(resBody) > 0 {
		if err := json.Unmarshal(resBody, result); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
