package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/entities"
)

// CreateAccountCommand registers a new user account.
type CreateAccountCommand struct {
	Username string
	Password string
}

func NewCreateAccountCommand() *CreateAccountCommand {
	return &CreateAccountCommand{}
}

func (cmd *CreateAccountCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (required, stored lowercase)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-account -username <name> -password <pw>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a new registry account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Username == "" || cmd.Password == "" {
		return fmt.Errorf("required flags -username and -password not provided")
	}
	return nil
}

func (cmd *CreateAccountCommand) Run() error {
	cfg := config.NewConfig()
	ctx, cancel := opContext(cfg)
	defer cancel()

	sess, err := openSession(ctx, cfg, "", "")
	if err != nil {
		return err
	}
	defer sess.Disconnect(ctx)

	candidate := entities.User{Username: cmd.Username, Password: cmd.Password}

	available, err := sess.IsUsernameAvailable(ctx, candidate)
	if err != nil {
		return err
	}
	if !available {
		return fmt.Errorf("username %q is taken", cmd.Username)
	}

	account, err := sess.CreateAccount(ctx, candidate)
	if err != nil {
		return err
	}

	fmt.Printf("Account created: %s\n", account.Username)
	return nil
}
