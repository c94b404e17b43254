package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/books"
	"github.com/umarali/bookregistry/internal/entities"
)

// AddReviewCommand appends a review to a book as the logged-in user.
type AddReviewCommand struct {
	Username string
	Password string
	ID       string
	Rating   float64
	Text     string
	Date     string
}

func NewAddReviewCommand() *AddReviewCommand {
	return &AddReviewCommand{}
}

func (cmd *AddReviewCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-review", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Account to log in as (required)")
	fs.StringVar(&cmd.Password, "password", "", "Account password (required)")
	fs.StringVar(&cmd.ID, "id", "", "Identifier of the book to review (required)")
	fs.Float64Var(&cmd.Rating, "rating", 0, "Rating, 0.0-5.0 (required)")
	fs.StringVar(&cmd.Text, "text", "", "Review text")
	fs.StringVar(&cmd.Date, "date", "", "Review date, YYYY-MM-DD (default today)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-review -username <name> -password <pw> -id <book id> -rating <r> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Append a review to a book. Each account may review a book once;\n")
		fmt.Fprintf(os.Stderr, "the book's aggregate rating is recomputed on append.\n\n")
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
	if cmd.Rating < 0 || cmd.Rating > 5 {
		return fmt.Errorf("rating %.1f out of range 0.0-5.0", cmd.Rating)
	}
	if cmd.Date == "" {
		cmd.Date = entities.FormatDate(time.Now())
	}
	return nil
}

func (cmd *AddReviewCommand) Run() error {
	review, err := entities.NewReview(cmd.Rating, cmd.Text, cmd.Date)
	if err != nil {
		return err
	}
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

	reviewed, err := repo.IsReviewedBy(ctx, id, current.Username)
	if err != nil {
		return err
	}
	if reviewed {
		return fmt.Errorf("account %q has already reviewed this book", current.Username)
	}

	saved, err := repo.AddReview(ctx, id, review, current)
	if err != nil {
		return err
	}

	fmt.Printf("Review added: %.1f by %s on %s\n",
		saved.Rating, saved.AddedBy.Username, entities.FormatDate(saved.DateAdded))
	return nil
}
