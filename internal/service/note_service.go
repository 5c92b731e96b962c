package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

// ErrNoteNotFound covers both missing notes and notes owned by someone else.
var ErrNoteNotFound = errors.New("note not found")

// NoteService exposes owner-scoped note operations.
type NoteService interface {
	List(ctx context.Context, ownerID string) ([]domain.Note, error)
	Create(ctx context.Context, ownerID, title, content, rawTags string) (*domain.Note, error)
	Get(ctx context.Context, ownerID, noteID string) (*domain.Note, error)
	Update(ctx context.Context, ownerID, noteID, title, content, rawTags string) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
	SearchByTag(ctx context.Context, ownerID, query string) ([]domain.Note, error)
}

type noteService struct {
	notes repository.NoteRepository
	now   func() time.Time
}

// NoteOption customises a NoteService.
type NoteOption func(*noteService)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) NoteOption {
	return func(s *noteService) { s.now = now }
}

func NewNoteService(notes repository.NoteRepository, opts ...NoteOption) NoteService {
	s := &noteService{
		notes: notes,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *noteService) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	return s.notes.ListByOwner(ctx, ownerID)
}

func (s *noteService) Create(ctx context.Context, ownerID, title, content, rawTags string) (*domain.Note, error) {
	now := s.now().UTC()
	note := &domain.Note{
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		Tags:      domain.SplitTags(rawTags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Get(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	note, err := s.notes.Get(ctx, ownerID, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, ownerID, noteID, title, content, rawTags string) (*domain.Note, error) {
	note, err := s.Get(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	// strictly after both stamps, so every edit changes the row
	floor := note.CreatedAt
	if note.UpdatedAt.After(floor) {
		floor = note.UpdatedAt
	}
	updated := s.now().UTC()
	if !updated.After(floor) {
		updated = floor.Add(time.Nanosecond)
	}

	note.Title = title
	note.Content = content
	note.Tags = domain.SplitTags(rawTags)
	note.UpdatedAt = updated

	// the write carries the owner filter too, so a note that changed hands or
	// vanished since the read is reported as missing
	if err := s.notes.Update(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, ownerID, noteID string) error {
	return s.notes.Delete(ctx, ownerID, noteID)
}

// SearchByTag returns the owner's notes having at least one tag matched by query,
// a case-insensitive regular expression. A query that does not compile is matched
// as a plain substring instead.
func (s *noteService) SearchByTag(ctx context.Context, ownerID, query string) ([]domain.Note, error) {
	match := tagMatcher(query)

	notes, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}

	found := []domain.Note{}
	for _, note := range notes {
		for _, tag := range note.Tags {
			if match(tag) {
				found = append(found, note)
				break
			}
		}
	}
	return found, nil
}

func tagMatcher(query string) func(string) bool {
	if re, err := regexp.Compile("(?i)" + query); err == nil {
		return re.MatchString
	}
	needle := strings.ToLower(query)
	return func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	}
}
