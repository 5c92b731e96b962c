package repository

import (
	"context"

	"notes-server/internal/domain"
)

// NoteRepository persists notes. Every lookup and mutation is filtered by owner.
type NoteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, note *domain.Note) (string, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)
	// Update replaces title, content, tags and updated_at of the note matching (id, owner).
	// It returns ErrNotFound when nothing matched.
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, ownerID, id string) error
}
