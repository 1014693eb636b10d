package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dreamnotes/internal/dbx"
	"github.com/dmitrijs2005/dreamnotes/internal/server/config"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
	"github.com/dmitrijs2005/dreamnotes/internal/server/repositories/repomanager"
)

// NoteService implements owner-scoped note operations. The owner id always
// comes from a resolved identity, never from request payloads, so every
// repository call below is already authorization-scoped.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService using repositories and server config.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
	}
}

// Create persists a new note owned by ownerID. Tags arrive already encoded.
func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content, encodedTags string) (*models.Note, error) {
	note := &models.Note{
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Tags:    encodedTags,
	}
	repo := s.repomanager.Notes(s.db)
	n, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// Get returns the note with the given id if ownerID owns it.
func (s *NoteService) Get(ctx context.Context, id, ownerID int64) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	return repo.Get(ctx, id, ownerID)
}

// ListByOwner returns ownerID's notes in creation order.
func (s *NoteService) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	return repo.ListByOwner(ctx, ownerID, offset, limit)
}

// ListByTag returns ownerID's notes carrying the exact tag token.
func (s *NoteService) ListByTag(ctx context.Context, ownerID int64, tag string, offset, limit int) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	return repo.ListByTag(ctx, ownerID, tag, offset, limit)
}

// Update applies the non-nil fields of patch to the owner-scoped note inside
// one transaction, so a concurrent reader never observes a half-applied
// patch. The repository refreshes updated_at on write.
func (s *NoteService) Update(ctx context.Context, id, ownerID int64, patch models.NotePatch) (*models.Note, error) {
	var updated *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.Get(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			note.Title = *patch.Title
		}
		if patch.Content != nil {
			note.Content = *patch.Content
		}
		if patch.Tags != nil {
			note.Tags = *patch.Tags
		}

		updated, err = repo.Update(ctx, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete permanently removes the owner-scoped note.
func (s *NoteService) Delete(ctx context.Context, id, ownerID int64) error {
	repo := s.repomanager.Notes(s.db)
	return repo.Delete(ctx, id, ownerID)
}
