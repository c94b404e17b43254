// Package cli provides the command-line surface over the data layer.
// Each command opens a session, runs one operation and disconnects.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database"
	"github.com/umarali/bookregistry/internal/entities"
)

// openSession connects as guest, or as an authenticated user when a
// username is given.
func openSession(ctx context.Context, cfg *config.Config, username, password string) (*database.Session, error) {
	sess := database.NewSession(cfg.Mongo)

	if username == "" {
		if err := sess.LoginAsGuest(ctx); err != nil {
			return nil, err
		}
		return sess, nil
	}

	creds := entities.User{Username: username, Password: password}
	if _, err := sess.LoginAsUser(ctx, creds); err != nil {
		return nil, fmt.Errorf("login as %q failed: %w", username, err)
	}
	return sess, nil
}

// opContext returns a bounded context for a single store round trip.
func opContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Timeouts.Query)
}

// printBooks renders a result list, one book per block.
func printBooks(books []*entities.Book) {
	if len(books) == 0 {
		fmt.Println("No books found")
		return
	}
	for _, b := range books {
		fmt.Printf("%s  %q  isbn=%s  published=%s  genre=%s  rating=%.1f  owner=%s\n",
			b.ID.Hex(), b.Title, b.ISBN,
			entities.FormatDate(b.Published), b.Genre, b.Rating, b.Owner.Username)
		for _, a := range b.Authors {
			fmt.Printf("    author: %s (born %s)\n", a.Name, entities.FormatDate(a.DateOfBirth))
		}
		for _, r := range b.Reviews {
			fmt.Printf("    review: %.1f by %s on %s: %s\n",
				r.Rating, r.AddedBy.Username, entities.FormatDate(r.DateAdded), r.Text)
		}
	}
	fmt.Printf("%d book(s)\n", len(books))
}

// parseAuthors parses "Name=YYYY-MM-DD" pairs separated by semicolons.
func parseAuthors(spec string) ([]entities.Author, error) {
	var authors []entities.Author
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, born, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid author %q (want Name=YYYY-MM-DD)", part)
		}
		author, err := entities.NewAuthor(strings.TrimSpace(name), strings.TrimSpace(born))
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}
