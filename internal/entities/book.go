package entities

import "time"

// Book is a single catalog record. Books are held in memory only and are
// lost when the process exits.
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Author     string    `json:"author"`
	Summary    string    `json:"summary"`
	Publisher  string    `json:"publisher"`
	PageCount  int       `json:"pageCount"`
	ReadPage   int       `json:"readPage"`
	Finished   bool      `json:"finished"` // derived from PageCount and ReadPage
	Reading    bool      `json:"reading"`
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookSummary is the projection returned by catalog listings.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookInput carries the caller-supplied fields for create and update.
// Id, finished and timestamps are never accepted from callers.
type BookInput struct {
	Name      string `json:"name"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage"`
	Reading   bool   `json:"reading"`
}

// Brief projects the book to its listing form.
func (b Book) Brief() BookSummary {
	return BookSummary{
		ID:        b.ID,
		Name:      b.Name,
		Publisher: b.Publisher,
	}
}
