// Package catalog holds the in-memory book collection and the rules for
// changing it.
//
// # Usage
//
//	svc := catalog.NewService()
//	id, err := svc.Create(entities.BookInput{Name: "Dune", PageCount: 412})
//	book, err := svc.GetByID(id)
//
// All operations are safe for concurrent use. The collection lives only as
// long as the Service value.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// maxIDAttempts bounds regeneration when a fresh id collides with one
// already issued.
const maxIDAttempts = 5

// Service owns an ordered collection of books.
type Service struct {
	mu     sync.RWMutex
	books  []entities.Book
	issued map[string]struct{}

	now   func() time.Time
	newID IDGenerator
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the time source used for insertedAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the book id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// NewService creates an empty catalog.
func NewService(opts ...Option) *Service {
	s := &Service{
		issued: make(map[string]struct{}),
		now:    time.Now,
		newID:  NanoID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates input, appends a new book and returns its id.
func (s *Service) Create(input entities.BookInput) (string, error) {
	if err := validate(input); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.allocateID()
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	book := entities.Book{
		ID:         id,
		InsertedAt: now,
	}
	apply(&book, input, now)
	s.books = append(s.books, book)

	// Verify the write landed before reporting success.
	if s.indexOf(id) == -1 {
		return "", fmt.Errorf("%w: book %s missing after insert", ErrInternal, id)
	}
	return id, nil
}

// List returns the books matching filter in insertion order, projected to
// their summary form. The result is never nil.
func (s *Service) List(filter ListFilter) []entities.BookSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match := filter.predicate()
	summaries := make([]entities.BookSummary, 0, len(s.books))
	for _, book := range s.books {
		if match == nil || match(book) {
			summaries = append(summaries, book.Brief())
		}
	}
	return summaries
}

// GetByID returns a copy of the book with the given id.
func (s *Service) GetByID(id string) (entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.books[idx], nil
}

// UpdateByID replaces every mutable field of the book and returns the
// stored result. Validation runs before the lookup, so invalid input for an
// unknown id reports a validation error.
func (s *Service) UpdateByID(id string, input entities.BookInput) (entities.Book, error) {
	if err := validate(input); err != nil {
		return entities.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	apply(&s.books[idx], input, s.now().UTC())
	return s.books[idx], nil
}

// DeleteByID removes the book and returns what was stored.
func (s *Service) DeleteByID(id string) (entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := s.books[idx]
	s.books = append(s.books[:idx], s.books[idx+1:]...)
	return removed, nil
}

// Len reports how many books are stored.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Snapshot returns a copy of every stored book in insertion order.
func (s *Service) Snapshot() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]entities.Book, len(s.books))
	copy(books, s.books)
	return books
}

// allocateID must be called with the write lock held.
func (s *Service) allocateID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("%w: generate id: %v", ErrInternal, err)
		}
		if _, taken := s.issued[id]; taken {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("%w: no unique id after %d attempts", ErrInternal, maxIDAttempts)
}

func (s *Service) indexOf(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// apply copies the mutable fields onto book, recomputes Finished and
// stamps UpdatedAt.
func apply(book *entities.Book, input entities.BookInput, now time.Time) {
	book.Name = input.Name
	book.Year = input.Year
	book.Author = input.Author
	book.Summary = input.Summary
	book.Publisher = input.Publisher
	book.PageCount = input.PageCount
	book.ReadPage = input.ReadPage
	book.Reading = input.Reading
	book.Finished = input.PageCount == input.ReadPage
	book.UpdatedAt = now
}

func validate(input entities.BookInput) error {
	if input.Name == "" {
		return &ValidationError{Reason: ReasonMissingName, Detail: "Please provide the book name"}
	}
	if input.ReadPage > input.PageCount {
		return &ValidationError{Reason: ReasonReadPageExceeds, Detail: "readPage must not be greater than pageCount"}
	}
	if input.PageCount < 0 {
		return &ValidationError{Reason: ReasonNegativePages, Detail: "pageCount must not be negative"}
	}
	if input.ReadPage < 0 {
		return &ValidationError{Reason: ReasonNegativeReadPage, Detail: "readPage must not be negative"}
	}
	return nil
}
