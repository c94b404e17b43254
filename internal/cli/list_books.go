package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/books"
)

// ListBooksCommand lists every book in the registry.
type ListBooksCommand struct{}

func NewListBooksCommand() *ListBooksCommand {
	return &ListBooksCommand{}
}

func (cmd *ListBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List every book in the registry.\n")
	}

	return fs.Parse(args)
}

func (cmd *ListBooksCommand) Run() error {
	cfg := config.NewConfig()
	ctx, cancel := opContext(cfg)
	defer cancel()

	sess, err := openSession(ctx, cfg, "", "")
	if err != nil {
		return err
	}
	defer sess.Disconnect(ctx)

	db, err := sess.Database()
	if err != nil {
		return err
	}

	all, err := books.NewRepository(db.Books()).All(ctx)
	if err != nil {
		return err
	}

	printBooks(all)
	return nil
}
