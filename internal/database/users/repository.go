// Package users provides account storage for the book registry.
//
// Accounts are flat documents in the "users" collection:
//
//	{username: <lowercase string>, password: <string>}
//
// Usernames are normalized to lowercase on creation; all predicates
// match exactly against the stored form.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umarali/bookregistry/internal/entities"
)

// ErrNotFound is returned when no account matches.
var ErrNotFound = errors.New("account not found")

type accountDocument struct {
	Username string `bson:"username"`
	Password string `bson:"password"`
}

// Repository handles all account operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository creates a repository over the users collection.
func NewRepository(coll *mongo.Collection) *Repository {
	return &Repository{coll: coll}
}

// Create persists a new account with the username lowercased. It does
// not check for duplicates; callers gate on UsernameAvailable first.
func (r *Repository) Create(ctx context.Context, username, password string) (entities.User, error) {
	doc := accountDocument{
		Username: strings.ToLower(username),
		Password: password,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return entities.User{}, fmt.Errorf("failed to create account: %w", err)
	}
	return entities.User{Username: doc.Username, Password: doc.Password}, nil
}

// UsernameAvailable reports whether no account exists with that exact
// username.
func (r *Repository) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up account: %w", err)
	}
	return false, nil
}

// Authenticate reports whether an account matches both username and
// password exactly.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	filter := bson.D{
		{Key: "username", Value: username},
		{Key: "password", Value: password},
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up account: %w", err)
	}
	return true, nil
}

// Get retrieves an account by its exact username.
func (r *Repository) Get(ctx context.Context, username string) (entities.User, error) {
	var doc accountDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.User{}, ErrNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to look up account: %w", err)
	}
	return entities.User{Username: doc.Username, Password: doc.Password}, nil
}
