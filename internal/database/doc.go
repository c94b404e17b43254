// Package database provides the data access layer for the book registry.
//
// # Architecture
//
// The layer is organized into domain-specific sub-packages over the two
// MongoDB collections the registry owns:
//
//	database/
//	├── database.go      # Connection lifecycle, collection handles
//	├── session.go       # Identity context: guest/user login, disconnect
//	├── books/           # Book queries, mutations and document mapping
//	└── users/           # Account records and credential predicates
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over a *mongo.Collection:
//
//	sess := database.NewSession(cfg.Mongo)
//	if err := sess.LoginAsGuest(ctx); err != nil { ... }
//
//	booksRepo := books.NewRepository(sess.Database().Books())
//	matches, err := booksRepo.SearchByTitle(ctx, "hobbit")
//
// Mutations take the session's current user explicitly; there is no
// package-level identity state. The underlying connection is torn down
// and redialed on every identity change so no operation ever runs under
// a stale identity context.
package database
