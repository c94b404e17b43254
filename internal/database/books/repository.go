// Package books provides queries and mutations over the "books"
// collection: the five search modes, list-all, ownership-checked
// deletion and atomic review appends.
package books

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umarali/bookregistry/internal/entities"
)

// ErrNotFound is returned when a review append targets a book that no
// longer exists.
var ErrNotFound = errors.New("book not found")

// Repository handles all book operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository creates a repository over the books collection.
func NewRepository(coll *mongo.Collection) *Repository {
	return &Repository{coll: coll}
}

// All returns every book in the store, fully hydrated, in store
// iteration order.
func (r *Repository) All(ctx context.Context) ([]*entities.Book, error) {
	return r.find(ctx, bson.D{})
}

// SearchByTitle matches a case-insensitive substring anywhere in the
// title.
func (r *Repository) SearchByTitle(ctx context.Context, title string) ([]*entities.Book, error) {
	return r.find(ctx, containsFilter("title", title))
}

// SearchByISBN matches a case-insensitive prefix of the ISBN.
func (r *Repository) SearchByISBN(ctx context.Context, isbn string) ([]*entities.Book, error) {
	return r.find(ctx, prefixFilter("isbn", isbn))
}

// SearchByAuthor matches a case-insensitive substring against any
// embedded author's name.
func (r *Repository) SearchByAuthor(ctx context.Context, name string) ([]*entities.Book, error) {
	return r.find(ctx, containsFilter("authors.name", name))
}

// SearchByRating returns books whose stored rating lies in [min, max],
// inclusive at both bounds. Bounds are not clamped; ratings themselves
// are bounded so out-of-range bounds match nothing extra.
func (r *Repository) SearchByRating(ctx context.Context, min, max float64) ([]*entities.Book, error) {
	filter := bson.D{{Key: "rating", Value: bson.D{
		{Key: "$gte", Value: min},
		{Key: "$lte", Value: max},
	}}}
	return r.find(ctx, filter)
}

// SearchByGenre matches the genre exactly.
func (r *Repository) SearchByGenre(ctx context.Context, genre entities.Genre) ([]*entities.Book, error) {
	return r.find(ctx, bson.D{{Key: "genre", Value: genre.String()}})
}

// Get retrieves a single book by its identifier.
func (r *Repository) Get(ctx context.Context, id primitive.ObjectID) (*entities.Book, error) {
	var doc bookDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read book: %w", err)
	}
	return fromDocument(doc)
}

// Add persists a new book attributed to owner: scalar fields, the
// embedded author list stamped with the owner's attribution, a rating
// of 0.0 and an explicit empty review list. The returned book is the
// stored record re-read, carrying its assigned identifier.
func (r *Repository) Add(ctx context.Context, book *entities.Book, owner entities.User) (*entities.Book, error) {
	doc := toDocument(book, owner)
	doc.Rating = 0.0
	doc.Reviews = []reviewDocument{}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return r.Get(ctx, id)
}

// Delete removes the book only if current owns it. The filter carries
// both the identifier and the owner username, so the check holds in the
// store even against a stale in-memory copy. Not-found and
// not-permitted both come back as (nil, nil); the store is unchanged.
func (r *Repository) Delete(ctx context.Context, book *entities.Book, current entities.User) (*entities.Book, error) {
	if !book.Saved() {
		return nil, nil
	}
	filter := bson.D{
		{Key: "_id", Value: book.ID},
		{Key: "username", Value: current.Username},
	}

	var doc bookDocument
	err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	return fromDocument(doc)
}

// AddReview appends a review attributed to current and recomputes the
// aggregate rating as the mean of all embedded review ratings, in one
// atomic single-document update. Concurrent appends against the same
// book serialize in the store instead of overwriting each other. The
// returned review is the appended sub-document as persisted.
func (r *Repository) AddReview(ctx context.Context, bookID primitive.ObjectID, review entities.Review, current entities.User) (entities.Review, error) {
	stamped := reviewToDocument(review, current)

	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{{Key: "reviews", Value: bson.D{
			{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
				// $literal keeps text starting with "$" from being
				// read as a field path.
				bson.A{bson.D{{Key: "$literal", Value: stamped}}},
			}},
		}}}}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "rating", Value: bson.D{
			{Key: "$avg", Value: "$reviews.rating"},
		}}}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: bookID}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Review{}, ErrNotFound
	}
	if err != nil {
		return entities.Review{}, fmt.Errorf("failed to add review: %w", err)
	}
	if len(doc.Reviews) == 0 {
		return entities.Review{}, fmt.Errorf("book %s: review list empty after append", bookID.Hex())
	}
	return reviewFromDocument(doc.Reviews[len(doc.Reviews)-1]), nil
}

// IsReviewedBy reports whether any embedded review on the book is
// attributed to the given username.
func (r *Repository) IsReviewedBy(ctx context.Context, bookID primitive.ObjectID, username string) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: bookID},
		{Key: "reviews.addedByUser", Value: username},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to look up reviews: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) find(ctx context.Context, filter bson.D) ([]*entities.Book, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}

	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	result := make([]*entities.Book, 0, len(docs))
	for _, doc := range docs {
		book, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, book)
	}
	return result, nil
}

// containsFilter matches field values containing the literal text,
// case-insensitively.
func containsFilter(field, text string) bson.D {
	return regexFilter(field, regexp.QuoteMeta(text))
}

// prefixFilter matches field values starting with the literal text,
// case-insensitively.
func prefixFilter(field, text string) bson.D {
	return regexFilter(field, "^"+regexp.QuoteMeta(text))
}

func regexFilter(field, pattern string) bson.D {
	return bson.D{{Key: field, Value: primitive.Regex{Pattern: pattern, Options: "i"}}}
}
