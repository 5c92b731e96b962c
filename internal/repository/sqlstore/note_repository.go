package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

// Tags are kept as a JSON array so each note stays a single self-contained row.
const createNotesTable = `
CREATE TABLE IF NOT EXISTS notes (
	id VARCHAR(36) PRIMARY KEY,
	user_id VARCHAR(36) NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	tags TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
)`

const selectNoteColumns = `SELECT id, user_id, title, content, tags, created_at, updated_at FROM notes`

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

// Create inserts the note and fills in the generated id.
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (string, error) {
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		note.UserID,
		note.Title,
		note.Content,
		tags,
		toUnixNano(note.CreatedAt),
		toUnixNano(note.UpdatedAt),
	); err != nil {
		return "", fmt.Errorf("insert note: %w", err)
	}

	note.ID = id
	return id, nil
}

func (r *NoteRepository) Get(ctx context.Context, ownerID, id string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, selectNoteColumns+`
WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("note %s: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return note, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNoteColumns+`
WHERE user_id = ?
ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, tags = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		note.Title,
		note.Content,
		tags,
		toUnixNano(note.UpdatedAt),
		note.ID,
		note.UserID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("note rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("note %s: %w", note.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, ownerID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func scanNote(row interface {
	Scan(dest ...any) error
}) (*domain.Note, error) {
	var (
		note                 domain.Note
		tags                 string
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&tags,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &note.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of note %s: %w", note.ID, err)
	}
	note.CreatedAt = fromUnixNano(createdAt)
	note.UpdatedAt = fromUnixNano(updatedAt)
	return &note, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}
