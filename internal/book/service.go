package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Get returns the book with the given id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates f and persists a new book.
func (s *Service) Create(ctx context.Context, f Fields) (Book, error) {
	if err := validateFields(f); err != nil {
		return Book{}, err
	}
	b := Build(f)
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update overwrites every editable field of b with f and persists it. b is
// left untouched when validation fails.
func (s *Service) Update(ctx context.Context, b Book, f Fields) (Book, error) {
	if err := validateFields(f); err != nil {
		return b, err
	}
	b.apply(f)
	if err := s.repo.Update(ctx, &b); err != nil {
		return b, err
	}
	return b, nil
}

// Delete removes b from storage.
func (s *Service) Delete(ctx context.Context, b Book) error {
	return s.repo.Delete(ctx, b.ID)
}
