package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/books"
	"github.com/umarali/bookregistry/internal/entities"
)

// AddBookCommand adds a new book owned by the logged-in user.
type AddBookCommand struct {
	Username  string
	Password  string
	Title     string
	ISBN      string
	Published string
	Genre     string
	Authors   string
}

func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Account to log in as (required)")
	fs.StringVar(&cmd.Password, "password", "", "Account password (required)")
	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "Book ISBN (required)")
	fs.StringVar(&cmd.Published, "published", "", "Publish date, YYYY-MM-DD (required)")
	fs.StringVar(&cmd.Genre, "genre", "", "Genre, one of: "+genreList()+" (required)")
	fs.StringVar(&cmd.Authors, "authors", "", "Authors as 'Name=YYYY-MM-DD', semicolon-separated")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book -username <name> -password <pw> -title <t> -isbn <i> -published <date> -genre <g> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the registry, owned by the logged-in account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add-book -username bob -password pw -title Dune -isbn 9780441013593 \\\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "      -published 1965-08-01 -genre SciFi -authors \"Frank Herbert=1920-10-08\"\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Username == "" || cmd.Password == "" {
		return fmt.Errorf("required flags -username and -password not provided")
	}
	if cmd.Title == "" || cmd.ISBN == "" || cmd.Published == "" || cmd.Genre == "" {
		return fmt.Errorf("required flags -title, -isbn, -published and -genre not provided")
	}
	return nil
}

func (cmd *AddBookCommand) Run() error {
	book, err := entities.NewBook(cmd.Title, cmd.ISBN, cmd.Published, cmd.Genre)
	if err != nil {
		return err
	}
	authors, err := parseAuthors(cmd.Authors)
	if err != nil {
		return err
	}
	for _, a := range authors {
		book.AddAuthor(a)
	}

	cfg := config.NewConfig()
	ctx, cancel := opContext(cfg)
	defer cancel()

	sess, err := openSession(ctx, cfg, cmd.Username, cmd.Password)
	if err != nil {
		return err
	}
	defer sess.Disconnect(ctx)

	owner, _ := sess.CurrentUser()
	db, err := sess.Database()
	if err != nil {
		return err
	}

	saved, err := books.NewRepository(db.Books()).Add(ctx, book, owner)
	if err != nil {
		return err
	}

	fmt.Printf("Book added with id %s\n", saved.ID.Hex())
	printBooks([]*entities.Book{saved})
	return nil
}

func genreList() string {
	s := ""
	for i, g := range entities.Genres() {
		if i > 0 {
			s += ", "
		}
		s += g.String()
	}
	return s
}
