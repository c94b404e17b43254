package cli

import (
	"flag"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/books"
)

// DeleteBookCommand deletes a book the logged-in user owns.
type DeleteBookCommand struct {
	Username string
	Password string
	ID       string
}

func NewDeleteBookCommand() *DeleteBookCommand {
	return &DeleteBookCommand{}
}

func (cmd *DeleteBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("delete-book", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Account to log in as (required)")
	fs.StringVar(&cmd.Password, "password", "", "Account password (required)")
	fs.StringVar(&cmd.ID, "id", "", "Identifier of the book to delete (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s delete-book -username <name> -password <pw> -id <book id>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete a book. Only the account that added a book may delete it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Username == "" || cmd.Password == "" {
		return fmt.Errorf("required flags -username and -password not provided")
	}
	if cmd.ID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *DeleteBookCommand) Run() error {
	id, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return fmt.Errorf("invalid book id %q: %w", cmd.ID, err)
	}

	cfg := config.NewConfig()
	ctx, cancel := opContext(cfg)
	defer cancel()

	sess, err := openSession(ctx, cfg, cmd.Username, cmd.Password)
	if err != nil {
		return err
	}
	defer sess.Disconnect(ctx)

	current, _ := sess.CurrentUser()
	db, err := sess.Database()
	if err != nil {
		return err
	}
	repo := books.NewRepository(db.Books())

	book, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := repo.Delete(ctx, book, current)
	if err != nil {
		return err
	}
	if deleted == nil {
		fmt.Println("Not deleted: book not found or not owned by you")
		return nil
	}

	fmt.Printf("Deleted %q (%s)\n", deleted.Title, deleted.ID.Hex())
	return nil
}
