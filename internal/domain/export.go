package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountSnapshot is the document written to object storage by an export.
type AccountSnapshot struct {
	User       PublicProfile `json:"user"`
	Notes      []Note        `json:"notes"`
	Tasks      []Task        `json:"tasks"`
	Courses    []Course      `json:"courses"`
	ExportedAt time.Time     `json:"exported_at"`
}

type ExportResult struct {
	ID        uuid.UUID `json:"id"`
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	SizeBytes int64     `json:"size_bytes"`
}
