package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productivity-hub/internal/domain"
)

const (
	DefaultWindow  = 24 * time.Hour
	DefaultHorizon = 100
)

type HistoryReader interface {
	ListRecent(ctx context.Context, query domain.NotificationQuery) ([]domain.Notification, error)
}

// Policy withholds a reminder when the same subject was already reminded
// about within the window. Only the newest horizon notifications of the
// recipient are inspected, so an older match further back is not seen.
type Policy struct {
	history HistoryReader
	window  time.Duration
	horizon int
}

func NewPolicy(history HistoryReader, window time.Duration, horizon int) *Policy {
	if window <= 0 {
		window = DefaultWindow
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Policy{history: history, window: window, horizon: horizon}
}

func (p *Policy) ShouldSuppress(ctx context.Context, userID uuid.UUID, kind Kind, subjectID uuid.UUID, now time.Time) (bool, error) {
	recent, err := p.history.ListRecent(ctx, domain.NotificationQuery{
		RecipientID: userID,
		Limit:       p.horizon,
	})
	if err != nil {
		return false, err
	}
	return HasRecentDuplicate(recent, kind, subjectID, now.Add(-p.window)), nil
}

// HasRecentDuplicate reports whether history holds a notification of kind
// about subjectID created strictly after since.
func HasRecentDuplicate(history []domain.Notification, kind Kind, subjectID uuid.UUID, since time.Time) bool {
	want := subjectID.String()
	for _, n := range history {
		if n.Type != kind.Type || !n.CreatedAt.After(since) {
			continue
		}
		v, ok := n.Metadata[kind.SubjectKey]
		if ok && fmt.Sprint(v) == want {
			return true
		}
	}
	return false
}
