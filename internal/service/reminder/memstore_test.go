package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"productivity-hub/internal/domain"
)

type memTasks []domain.Task

func (m memTasks) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memCourses []domain.Course

func (m memCourses) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range m {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// memNotifications stamps CreatedAt from clock and lists newest first.
type memNotifications struct {
	mu    sync.Mutex
	items []domain.Notification
	clock func() time.Time
}

func newMemNotifications(clock func() time.Time) *memNotifications {
	return &memNotifications{clock: clock}
}

func (m *memNotifications) Create(_ context.Context, n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.CreatedAt = m.clock()
	n.UpdatedAt = n.CreatedAt
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) ListRecent(_ context.Context, q domain.NotificationQuery) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var mine []domain.Notification
	for _, n := range m.items {
		if n.RecipientID == q.RecipientID && (!q.UnreadOnly || !n.IsRead) {
			mine = append(mine, n)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })

	if q.Skip >= len(mine) {
		return []domain.Notification{}, nil
	}
	mine = mine[q.Skip:]
	if q.Limit > 0 && len(mine) > q.Limit {
		mine = mine[:q.Limit]
	}
	return mine, nil
}

func (m *memNotifications) seed(n domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
}

func (m *memNotifications) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// gatedTasks snapshots the stored tasks and then parks its first caller until
// gate is closed, so a test can change the tasks while a sweep is mid-flight.
type gatedTasks struct {
	mu      sync.Mutex
	tasks   memTasks
	calls   int
	entered chan struct{}
	gate    chan struct{}
}

func newGatedTasks(tasks ...domain.Task) *gatedTasks {
	return &gatedTasks{tasks: tasks, entered: make(chan struct{}), gate: make(chan struct{})}
}

func (g *gatedTasks) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	g.mu.Lock()
	snapshot := append(memTasks(nil), g.tasks...)
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	out, err := snapshot.ListByUser(ctx, userID)
	if first {
		close(g.entered)
		<-g.gate
	}
	return out, err
}

func (g *gatedTasks) set(tasks ...domain.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tasks = tasks
}

func (g *gatedTasks) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// memLocker behaves like RedisLocker: one holder per user, plus a rerun flag
// left by callers that deferred to the holder.
type memLocker struct {
	mu       sync.Mutex
	held     map[uuid.UUID]bool
	rerun    map[uuid.UUID]bool
	unlocked int
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[uuid.UUID]bool{}, rerun: map[uuid.UUID]bool{}}
}

func (l *memLocker) TryAcquire(_ context.Context, userID uuid.UUID, deferToHolder bool) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] {
		if deferToHolder {
			l.rerun[userID] = true
		}
		return nil, ErrSweepInProgress
	}
	l.held[userID] = true
	delete(l.rerun, userID)
	return &memLease{locker: l, userID: userID}, nil
}

func (l *memLocker) hold(userID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[userID] = true
}

func (l *memLocker) isHeld(userID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[userID]
}

type memLease struct {
	locker *memLocker
	userID uuid.UUID
}

func (m *memLease) Release(context.Context) (bool, error) {
	l := m.locker
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rerun[m.userID] {
		delete(l.rerun, m.userID)
		return true, nil
	}
	delete(l.held, m.userID)
	return false, nil
}

func (m *memLease) Unlock(context.Context) error {
	l := m.locker
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, m.userID)
	l.unlocked++
	return nil
}
