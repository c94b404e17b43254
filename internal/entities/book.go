package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a catalog record with its embedded authors and reviews.
// ID is primitive.NilObjectID until the book has been persisted.
type Book struct {
	ID        primitive.ObjectID
	Title     string
	ISBN      string
	Published time.Time
	Genre     Genre
	Rating    float64
	Owner     User
	Authors   []Author
	Reviews   []Review
}

// NewBook builds a not-yet-saved book from form input. The published
// date must be YYYY-MM-DD and the genre must name a member of the
// closed genre set; either failing is the caller's validation problem
// surfaced immediately.
func NewBook(title, isbn, published, genre string) (*Book, error) {
	pub, err := ParseDate(published)
	if err != nil {
		return nil, err
	}
	g, err := ParseGenre(genre)
	if err != nil {
		return nil, err
	}
	return &Book{
		Title:     title,
		ISBN:      isbn,
		Published: pub,
		Genre:     g,
	}, nil
}

// Saved reports whether the book carries a store-assigned identifier.
func (b *Book) Saved() bool {
	return !b.ID.IsZero()
}

// AddAuthor appends an author, preserving insertion order.
func (b *Book) AddAuthor(a Author) {
	b.Authors = append(b.Authors, a)
}

// AddReview appends a review, preserving insertion order. The stored
// aggregate rating is maintained by the mutation engine, not here.
func (b *Book) AddReview(r Review) {
	b.Reviews = append(b.Reviews, r)
}
