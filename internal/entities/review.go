package entities

import "time"

// Review is embedded inside a book's review list, append-only, in
// insertion order. Ratings are conventionally 0.0-5.0; this layer does
// not clamp them.
type Review struct {
	Rating    float64
	Text      string
	DateAdded time.Time
	AddedBy   User
}

// NewReview builds a review from form input. The added date must be a
// YYYY-MM-DD string.
func NewReview(rating float64, text, dateAdded string) (Review, error) {
	added, err := ParseDate(dateAdded)
	if err != nil {
		return Review{}, err
	}
	return Review{Rating: rating, Text: text, DateAdded: added}, nil
}

// AverageRating returns the exact arithmetic mean of the review ratings,
// or 0.0 when there are none. The store keeps this unrounded.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0.0
	}
	total := 0.0
	for _, r := range reviews {
		total += r.Rating
	}
	return total / float64(len(reviews))
}
