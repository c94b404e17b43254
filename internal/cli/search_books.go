package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/books"
	"github.com/umarali/bookregistry/internal/entities"
)

// SearchBooksCommand runs one of the five search modes.
type SearchBooksCommand struct {
	By    string
	Query string
	Min   float64
	Max   float64
}

func NewSearchBooksCommand() *SearchBooksCommand {
	return &SearchBooksCommand{}
}

func (cmd *SearchBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	fs.StringVar(&cmd.By, "by", "title", "Search mode: title, isbn, author, genre or rating")
	fs.StringVar(&cmd.Query, "q", "", "Search text (title/isbn/author substring or prefix, genre name)")
	fs.Float64Var(&cmd.Min, "min", 0.0, "Lower rating bound, inclusive (rating mode)")
	fs.Float64Var(&cmd.Max, "max", 5.0, "Upper rating bound, inclusive (rating mode)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search -by <mode> [-q <text>] [-min <r> -max <r>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search the registry.\n\n")
		fmt.Fprintf(os.Stderr, "Modes:\n")
		fmt.Fprintf(os.Stderr, "  title    case-insensitive substring of the title\n")
		fmt.Fprintf(os.Stderr, "  isbn     case-insensitive prefix of the ISBN\n")
		fmt.Fprintf(os.Stderr, "  author   case-insensitive substring of any author name\n")
		fmt.Fprintf(os.Stderr, "  genre    exact genre name (%s)\n", genreList())
		fmt.Fprintf(os.Stderr, "  rating   stored rating within [-min, -max]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.By {
	case "title", "isbn", "author", "genre":
		if cmd.Query == "" {
			return fmt.Errorf("required flag -q not provided for mode %q", cmd.By)
		}
	case "rating":
		if cmd.Min > cmd.Max {
			return fmt.Errorf("-min %.1f greater than -max %.1f", cmd.Min, cmd.Max)
		}
	default:
		return fmt.Errorf("unknown search mode %q", cmd.By)
	}
	return nil
}

func (cmd *SearchBooksCommand) Run() error {
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
	repo := books.NewRepository(db.Books())

	var result []*entities.Book
	switch cmd.By {
	case "title":
		result, err = repo.SearchByTitle(ctx, cmd.Query)
	case "isbn":
		result, err = repo.SearchByISBN(ctx, cmd.Query)
	case "author":
		result, err = repo.SearchByAuthor(ctx, cmd.Query)
	case "genre":
		genre, perr := entities.ParseGenre(cmd.Query)
		if perr != nil {
			return perr
		}
		result, err = repo.SearchByGenre(ctx, genre)
	case "rating":
		result, err = repo.SearchByRating(ctx, cmd.Min, cmd.Max)
	}
	if err != nil {
		return err
	}

	printBooks(result)
	return nil
}
