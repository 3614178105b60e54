package note

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/pkg/normalize"
	"productivity-hub/internal/repository"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateNoteInput) (*domain.Note, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Note, error)
	Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, tag string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Note], error)
}

type service struct {
	noteRepo repository.NoteRepository
}

func NewService(noteRepo repository.NoteRepository) Service {
	return &service{noteRepo: noteRepo}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateNoteInput) (*domain.Note, error) {
	title, ok := normalize.Text(input.Title)
	if !ok {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	note := &domain.Note{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		Content:  input.Content,
		Tags:     normalize.Labels(input.Tags),
		IsPinned: input.IsPinned,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *service) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return note, nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, ok := normalize.Text(*input.Title)
		if !ok {
			return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		}
		note.Title = title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Tags != nil {
		note.Tags = normalize.Labels(*input.Tags)
	}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, tag string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Note], error) {
	params.Validate()

	var filter string
	if labels := normalize.Labels([]string{tag}); len(labels) > 0 {
		filter = labels[0]
	}

	notes, total, err := s.noteRepo.ListByUser(ctx, userID, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Note]{}, err
	}
	return domain.NewPaginatedResponse(notes, params.Page, params.PageSize, total), nil
}
