package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"productivity-hub/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, tag string, params domain.PaginationParams) ([]domain.Note, int64, error)
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error)
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (note_id, user_id, title, content, tags, is_pinned)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Tags, note.IsPinned,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	err := r.db.GetContext(ctx, &note, `SELECT * FROM notes WHERE note_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	query := `
		UPDATE notes
		SET title = :title, content = :content, tags = :tags, is_pinned = :is_pinned, updated_at = NOW()
		WHERE note_id = :note_id`

	res, err := r.db.NamedExecContext(ctx, query, note)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE note_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListByUser pages through a user's notes, pinned first. An empty tag matches every note.
func (r *noteRepository) ListByUser(ctx context.Context, userID uuid.UUID, tag string, params domain.PaginationParams) ([]domain.Note, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM notes WHERE user_id = $1 AND ($2 = '' OR $2 = ANY(tags))`
	if err := r.db.GetContext(ctx, &total, countQuery, userID, tag); err != nil {
		return nil, 0, err
	}

	notes := []domain.Note{}
	query := `
		SELECT * FROM notes
		WHERE user_id = $1 AND ($2 = '' OR $2 = ANY(tags))
		ORDER BY is_pinned DESC, updated_at DESC
		LIMIT $3 OFFSET $4`
	err := r.db.SelectContext(ctx, &notes, query, userID, tag, params.PageSize, params.Offset())
	return notes, total, err
}

func (r *noteRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	notes := []domain.Note{}
	err := r.db.SelectContext(ctx, &notes, `SELECT * FROM notes WHERE user_id = $1 ORDER BY created_at`, userID)
	return notes, err
}
