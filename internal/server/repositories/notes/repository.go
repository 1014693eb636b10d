package notes

import (
	"context"

	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
)

// Repository is the owner-scoped note store. Every lookup and mutation is
// filtered by both note id and owner id, so a note belonging to another
// user is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Note, error)
	ListByTag(ctx context.Context, ownerID int64, tag string, offset, limit int) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id, ownerID int64) error
}
