package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/user/token", r.URL.Path)

		var creds credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok-123", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	require.False(t, c.IsLoggedIn())

	require.NoError(t, c.Login(context.Background(), "alice", "s3cret"))
	assert.True(t, c.IsLoggedIn())

	c.Logout()
	assert.False(t, c.IsLoggedIn())
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthHeaderName)
		_ = json.NewEncoder(w).Encode([]Note{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	c.accessToken = "tok-123"

	_, err := c.ListNotes(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, common.BearerPrefix+"tok-123", gotAuth)
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		sentinel error
	}{
		{name: "unauthorized", code: http.StatusUnauthorized, sentinel: common.ErrUnauthorized},
		{name: "not found", code: http.StatusNotFound, sentinel: common.ErrNotFound},
		{name: "conflict", code: http.StatusConflict, sentinel: common.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.code)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second)
			_, err := c.GetNote(context.Background(), 1)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestListNotesByTagEscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode([]Note{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.ListNotesByTag(context.Background(), "to do", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "/api/notes/tag/to%20do", gotPath)
}

func TestUpdateNoteOmitsAbsentFields(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(Note{ID: 1, Title: "t", Content: "new", Tags: []string{}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	content := "new"
	_, err := c.UpdateNote(context.Background(), 1, NotePatch{Content: &content})
	require.NoError(t, err)

	assert.Contains(t, gotBody, "content")
	assert.NotContains(t, gotBody, "title")
	assert.NotContains(t, gotBody, "tags")
}
