package books

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umarali/bookregistry/internal/entities"
)

// The document layout is fixed; existing registry data uses these field
// names, including "username" for the owner and "addedByUser" for
// embedded attribution.
type bookDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	ISBN      string             `bson:"isbn"`
	Published time.Time          `bson:"published"`
	Genre     string             `bson:"genre"`
	Rating    float64            `bson:"rating"`
	Username  string             `bson:"username"`
	Authors   []authorDocument   `bson:"authors"`
	Reviews   []reviewDocument   `bson:"reviews"`
}

type authorDocument struct {
	Name      string    `bson:"name"`
	BirthDate time.Time `bson:"birthDate"`
	AddedBy   string    `bson:"addedByUser"`
}

type reviewDocument struct {
	Rating    float64   `bson:"rating"`
	Text      string    `bson:"text"`
	DateAdded time.Time `bson:"dateAdded"`
	AddedBy   string    `bson:"addedByUser"`
}

// toDocument flattens a book for writing. Every embedded author is
// stamped with the owner's attribution; dates are truncated to
// date-only precision; the rating goes out unrounded.
func toDocument(b *entities.Book, owner entities.User) bookDocument {
	doc := bookDocument{
		Title:     b.Title,
		ISBN:      b.ISBN,
		Published: entities.DateOnly(b.Published),
		Genre:     b.Genre.String(),
		Rating:    b.Rating,
		Username:  owner.Username,
		Authors:   make([]authorDocument, 0, len(b.Authors)),
		Reviews:   make([]reviewDocument, 0, len(b.Reviews)),
	}
	if b.Saved() {
		doc.ID = b.ID
	}
	for _, a := range b.Authors {
		doc.Authors = append(doc.Authors, authorDocument{
			Name:      a.Name,
			BirthDate: entities.DateOnly(a.DateOfBirth),
			AddedBy:   owner.Username,
		})
	}
	for _, r := range b.Reviews {
		doc.Reviews = append(doc.Reviews, reviewToDocument(r, r.AddedBy))
	}
	return doc
}

// fromDocument hydrates a full book, authors and reviews in stored
// order. The aggregate rating gets the cosmetic one-decimal rounding
// here, on the read path only. A missing reviews array (older records
// never had one) hydrates as an empty list.
func fromDocument(doc bookDocument) (*entities.Book, error) {
	genre, err := entities.ParseGenre(doc.Genre)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", doc.ID.Hex(), err)
	}

	b := &entities.Book{
		ID:        doc.ID,
		Title:     doc.Title,
		ISBN:      doc.ISBN,
		Published: entities.DateOnly(doc.Published),
		Genre:     genre,
		Rating:    roundRating(doc.Rating),
		Owner:     entities.User{Username: doc.Username},
		Authors:   make([]entities.Author, 0, len(doc.Authors)),
		Reviews:   make([]entities.Review, 0, len(doc.Reviews)),
	}
	for _, a := range doc.Authors {
		b.Authors = append(b.Authors, entities.Author{
			Name:        a.Name,
			DateOfBirth: entities.DateOnly(a.BirthDate),
			AddedBy:     entities.User{Username: a.AddedBy},
		})
	}
	for _, r := range doc.Reviews {
		b.Reviews = append(b.Reviews, reviewFromDocument(r))
	}
	return b, nil
}

func reviewToDocument(r entities.Review, addedBy entities.User) reviewDocument {
	return reviewDocument{
		Rating:    r.Rating,
		Text:      r.Text,
		DateAdded: entities.DateOnly(r.DateAdded),
		AddedBy:   addedBy.Username,
	}
}

func reviewFromDocument(doc reviewDocument) entities.Review {
	return entities.Review{
		Rating:    doc.Rating,
		Text:      doc.Text,
		DateAdded: entities.DateOnly(doc.DateAdded),
		AddedBy:   entities.User{Username: doc.AddedBy},
	}
}

// roundRating applies the one-decimal display rounding. Stored
// aggregates stay exact; this is never used on the write path.
func roundRating(r float64) float64 {
	return math.Round(r*10) / 10
}
