package main

import (
	"fmt"
	"os"

	"github.com/umarali/bookregistry/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var cmd command
	switch os.Args[1] {
	case "list":
		cmd = cli.NewListBooksCommand()
	case "search":
		cmd = cli.NewSearchBooksCommand()
	case "add-book":
		cmd = cli.NewAddBookCommand()
	case "delete-book":
		cmd = cli.NewDeleteBookCommand()
	case "add-review":
		cmd = cli.NewAddReviewCommand()
	case "create-account":
		cmd = cli.NewCreateAccountCommand()
	case "version":
		fmt.Printf("bookregistry %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  list            List every book in the registry\n")
	fmt.Fprintf(os.Stderr, "  search          Search by title, isbn, author, genre or rating\n")
	fmt.Fprintf(os.Stderr, "  add-book        Add a book (requires login)\n")
	fmt.Fprintf(os.Stderr, "  delete-book     Delete a book you own (requires login)\n")
	fmt.Fprintf(os.Stderr, "  add-review      Review a book (requires login)\n")
	fmt.Fprintf(os.Stderr, "  create-account  Register a new account\n")
	fmt.Fprintf(os.Stderr, "  version         Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
