package domain

import (
	"strings"
	"time"
)

// Note is a free-text document owned by exactly one user.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SplitTags turns the comma separated form value into a tag list.
// Segments are kept verbatim, so "" becomes [""] and "a,,b" keeps the empty tag.
func SplitTags(raw string) []string {
	return strings.Split(raw, ",")
}

// JoinTags is the inverse of SplitTags, used to pre-fill edit forms.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
