package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/dmitrijs2005/dreamnotes/internal/server/middleware"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
	"github.com/dmitrijs2005/dreamnotes/internal/server/tags"
	"github.com/go-chi/chi/v5"
)

const defaultPageLimit = 10

// NoteService defines the note operations required by the HTTP handlers.
// Every method takes the owner id resolved by the auth middleware.
type NoteService interface {
	Create(ctx context.Context, ownerID int64, title, content, encodedTags string) (*models.Note, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Note, error)
	ListByTag(ctx context.Context, ownerID int64, tag string, offset, limit int) ([]*models.Note, error)
	Update(ctx context.Context, id, ownerID int64, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// NoteHandler handles the owner-scoped note CRUD endpoints.
type NoteHandler struct {
	NoteService NoteService
}

// noteRequest is the JSON payload for note creation.
type noteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// notePatchRequest is the JSON payload for partial update. Absent fields
// are left unchanged.
type notePatchRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// noteResponse is the wire representation of a note. Tags are always a
// list here; the comma-encoded storage form never leaves the server.
type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags.Decode(n.Tags),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// writeNoteError translates service errors into HTTP responses. Unexpected
// errors collapse to a generic 500 so storage internals never leak.
func writeNoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "note not found", http.StatusNotFound)
	case errors.Is(err, common.ErrUnauthorized):
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ownerID pulls the resolved user id out of the request context. The auth
// middleware guarantees it is present on these routes.
func ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

func pagination(r *http.Request) (offset, limit int) {
	offset, limit = 0, defaultPageLimit
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return offset, limit
}

// Create handles note creation. Title and content are required; tags are
// optional but must be round-trippable (non-empty, no delimiter inside).
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Content == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !tags.Validate(req.Tags) {
		http.Error(w, "invalid tags", http.StatusBadRequest)
		return
	}

	note, err := h.NoteService.Create(r.Context(), owner, req.Title, req.Content, tags.Encode(req.Tags))
	if err != nil {
		writeNoteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toNoteResponse(note))
}

// List returns the caller's notes in creation order, paginated via
// offset/limit query parameters.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	offset, limit := pagination(r)
	notes, err := h.NoteService.ListByOwner(r.Context(), owner, offset, limit)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	h.writeNoteList(w, notes)
}

// ListByTag returns the caller's notes carrying the exact tag token from
// the URL.
func (h *NoteHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	tag := chi.URLParam(r, "tag")
	if tag == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	offset, limit := pagination(r)
	notes, err := h.NoteService.ListByTag(r.Context(), owner, tag, offset, limit)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	h.writeNoteList(w, notes)
}

// Get returns one of the caller's notes by id.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	note, err := h.NoteService.Get(r.Context(), id, owner)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toNoteResponse(note))
}

// Update applies a partial update to one of the caller's notes. Only the
// fields present in the payload change; updated_at is refreshed.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var req notePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Tags != nil && !tags.Validate(*req.Tags) {
		http.Error(w, "invalid tags", http.StatusBadRequest)
		return
	}

	patch := models.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Tags != nil {
		encoded := tags.Encode(*req.Tags)
		patch.Tags = &encoded
	}

	note, err := h.NoteService.Update(r.Context(), id, owner, patch)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toNoteResponse(note))
}

// Delete permanently removes one of the caller's notes.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.NoteService.Delete(r.Context(), id, owner); err != nil {
		writeNoteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) writeNoteList(w http.ResponseWriter, notes []*models.Note) {
	resp := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
