package config

const (
	// DefaultMongoURI points at a local unauthenticated MongoDB.
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultDatabaseName matches the database existing registry data
	// lives in.
	DefaultDatabaseName = "MongoBooksDB"
)
