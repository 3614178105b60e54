package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/repository"
)

var ErrExportUnavailable = errors.New("export storage is not configured")

// ObjectStore is the subset of *minio.Client used for exports.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Service interface {
	ExportAccount(ctx context.Context, userID uuid.UUID) (*domain.ExportResult, error)
}

type service struct {
	repos  *repository.Repositories
	store  ObjectStore
	bucket string
	urlTTL time.Duration
	now    func() time.Time
}

func NewService(repos *repository.Repositories, store ObjectStore, bucket string, urlTTL time.Duration) Service {
	return &service{
		repos:  repos,
		store:  store,
		bucket: bucket,
		urlTTL: urlTTL,
		now:    time.Now,
	}
}

func (s *service) ExportAccount(ctx context.Context, userID uuid.UUID) (*domain.ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	snapshot, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	id := uuid.New()
	key := fmt.Sprintf("exports/%s/%s.json", userID, snapshot.ExportedAt.Format("20060102T150405Z"))

	_, err = s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType:        "application/json",
		ContentDisposition: fmt.Sprintf(`attachment; filename="export-%s.json"`, id),
		UserMetadata:       map[string]string{"export-id": id.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}

	signed, err := s.store.PresignedGetObject(ctx, s.bucket, key, s.urlTTL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("sign export url: %w", err)
	}

	return &domain.ExportResult{
		ID:        id,
		ObjectKey: key,
		URL:       signed.String(),
		ExpiresAt: snapshot.ExportedAt.Add(s.urlTTL),
		SizeBytes: int64(len(payload)),
	}, nil
}

func (s *service) snapshot(ctx context.Context, userID uuid.UUID) (*domain.AccountSnapshot, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	notes, err := s.repos.Note.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repos.Task.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := s.repos.Course.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.AccountSnapshot{
		User:       user.Public(),
		Notes:      notes,
		Tasks:      tasks,
		Courses:    courses,
		ExportedAt: s.now().UTC(),
	}, nil
}
