package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/mocks"
	"productivity-hub/internal/repository"
)

type fakeStore struct {
	objects map[string][]byte
	putErr  error
	ttl     time.Duration
}

func (f *fakeStore) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+key] = data
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func (f *fakeStore) PresignedGetObject(_ context.Context, bucket, key string, expires time.Duration, _ url.Values) (*url.URL, error) {
	f.ttl = expires
	return url.Parse("https://files.example.com/" + bucket + "/" + key + "?sig=abc")
}

func newFixture() (*service, *fakeStore, *mocks.UserRepository, *mocks.NoteRepository, *mocks.TaskRepository, *mocks.CourseRepository) {
	users := new(mocks.UserRepository)
	notes := new(mocks.NoteRepository)
	tasks := new(mocks.TaskRepository)
	courses := new(mocks.CourseRepository)
	store := &fakeStore{objects: map[string][]byte{}}
	repos := &repository.Repositories{User: users, Note: notes, Task: tasks, Course: courses}

	svc := NewService(repos, store, "exports-bucket", 15*time.Minute).(*service)
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	return svc, store, users, notes, tasks, courses
}

func TestExportService_ExportAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "ada@example.com", FullName: "Ada"}

	t.Run("Writes snapshot and signs it", func(t *testing.T) {
		svc, store, users, notes, tasks, courses := newFixture()
		users.On("GetByID", ctx, userID).Return(user, nil).Once()
		notes.On("ListAllByUser", ctx, userID).Return([]domain.Note{{Title: "n"}}, nil).Once()
		tasks.On("ListByUser", ctx, userID).Return([]domain.Task{{Title: "t", Goals: domain.Goals{{Title: "g"}}}}, nil).Once()
		courses.On("ListByUser", ctx, userID).Return([]domain.Course{}, nil).Once()

		res, err := svc.ExportAccount(ctx, userID)

		require.NoError(t, err)
		wantKey := "exports/" + userID.String() + "/20260304T050607Z.json"
		assert.Equal(t, wantKey, res.ObjectKey)
		assert.Contains(t, res.URL, wantKey)
		assert.Equal(t, 15*time.Minute, store.ttl)
		assert.Equal(t, svc.now().Add(15*time.Minute), res.ExpiresAt)

		stored := store.objects["exports-bucket/"+wantKey]
		require.NotEmpty(t, stored)
		assert.Equal(t, int64(len(stored)), res.SizeBytes)

		var snap domain.AccountSnapshot
		require.NoError(t, json.Unmarshal(stored, &snap))
		assert.Equal(t, "Ada", snap.User.FullName)
		assert.Len(t, snap.Tasks, 1)
		assert.NotContains(t, string(stored), "ada@example.com")
	})

	t.Run("Unknown user", func(t *testing.T) {
		svc, _, users, _, _, _ := newFixture()
		users.On("GetByID", ctx, userID).Return(nil, nil).Once()

		_, err := svc.ExportAccount(ctx, userID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Storage failure", func(t *testing.T) {
		svc, store, users, notes, tasks, courses := newFixture()
		store.putErr = errors.New("bucket gone")
		users.On("GetByID", ctx, userID).Return(user, nil).Once()
		notes.On("ListAllByUser", ctx, userID).Return([]domain.Note{}, nil).Once()
		tasks.On("ListByUser", ctx, userID).Return([]domain.Task{}, nil).Once()
		courses.On("ListByUser", ctx, userID).Return([]domain.Course{}, nil).Once()

		_, err := svc.ExportAccount(ctx, userID)

		assert.ErrorContains(t, err, "store export")
	})
}

func TestExportService_WithoutStorage(t *testing.T) {
	svc := NewService(&repository.Repositories{}, nil, "b", time.Minute)

	_, err := svc.ExportAccount(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrExportUnavailable)
}
