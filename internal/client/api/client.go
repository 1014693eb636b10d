// Package api implements the HTTP client for the DreamNotes backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
)

// User is the wire representation of a user account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Note is the wire representation of a note.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch carries a partial note update. Nil fields are left unchanged
// on the server.
type NotePatch struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// Client is the command surface the CLI needs from the backend.
type Client interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) error
	Logout()
	IsLoggedIn() bool
	CreateNote(ctx context.Context, title, content string, tags []string) (*Note, error)
	ListNotes(ctx context.Context, offset, limit int) ([]Note, error)
	ListNotesByTag(ctx context.Context, tag string, offset, limit int) ([]Note, error)
	GetNote(ctx context.Context, id int64) (*Note, error)
	UpdateNote(ctx context.Context, id int64, patch NotePatch) (*Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

// HTTPClient talks JSON over HTTP to the DreamNotes API. It keeps the
// bearer token obtained at login and attaches it to every request.
type HTTPClient struct {
	baseURL     string
	http        *http.Client
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// do issues one request and decodes a 2xx JSON response into out (when
// out is non-nil). Error statuses are mapped onto the shared sentinel
// errors so callers can use errors.Is.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg, common.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, common.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, common.ErrConflict)
	default:
		return fmt.Errorf("server returned %d: %s", code, msg)
	}
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/api/user/users", credentials{Username: username, Password: password}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	var tr tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/user/token", credentials{Username: username, Password: password}, &tr)
	if err != nil {
		return err
	}
	c.accessToken = tr.AccessToken
	return nil
}

func (c *HTTPClient) Logout() {
	c.accessToken = ""
}

func (c *HTTPClient) IsLoggedIn() bool {
	return c.accessToken != ""
}

type noteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

func (c *HTTPClient) CreateNote(ctx context.Context, title, content string, tags []string) (*Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/api/notes/", noteRequest{Title: title, Content: content, Tags: tags}, &n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func pageQuery(offset, limit int) string {
	q := url.Values{}
	if offset > 0 {
		q.Set("offset", fmt.Sprint(offset))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *HTTPClient) ListNotes(ctx context.Context, offset, limit int) ([]Note, error) {
	var notes []Note
	err := c.do(ctx, http.MethodGet, "/api/notes/"+pageQuery(offset, limit), nil, &notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) ListNotesByTag(ctx context.Context, tag string, offset, limit int) ([]Note, error) {
	var notes []Note
	err := c.do(ctx, http.MethodGet, "/api/notes/tag/"+url.PathEscape(tag)+pageQuery(offset, limit), nil, &notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, id int64) (*Note, error) {
	var n Note
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil, &n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id int64, patch NotePatch) (*Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), patch, &n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, nil)
}
