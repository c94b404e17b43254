package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umarali/bookregistry/internal/config"
)

// Collection names are fixed; existing registry data lives under them.
const (
	booksCollection = "books"
	usersCollection = "users"
)

// ErrUnavailable marks failures to reach the store, as opposed to a
// query legitimately matching nothing.
var ErrUnavailable = errors.New("database unavailable")

// Database owns a live MongoDB connection and hands out the registry's
// two collections.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the store and verifies it is reachable.
func Connect(ctx context.Context, cfg config.Mongo) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Database{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Close releases the connection.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Books returns the books collection.
func (d *Database) Books() *mongo.Collection {
	return d.db.Collection(booksCollection)
}

// Users returns the users collection.
func (d *Database) Users() *mongo.Collection {
	return d.db.Collection(usersCollection)
}
