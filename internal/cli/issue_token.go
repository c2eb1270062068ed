package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/config"
	"github.com/mrlokans/authkeeper/internal/entities"
)

// IssueTokenCommand signs a token for an arbitrary subject with JWT_SECRET.
type IssueTokenCommand struct {
	Subject  string
	Username string
	TTL      time.Duration

	auth config.Auth
	Out  io.Writer
}

// NewIssueTokenCommand signs with the secret and lifetime from cfg.
func NewIssueTokenCommand(cfg config.Auth) *IssueTokenCommand {
	return &IssueTokenCommand{auth: cfg, Out: os.Stdout}
}

func (cmd *IssueTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)

	fs.StringVar(&cmd.Subject, "sub", "", "Account id to put in the sub claim (required)")
	fs.StringVar(&cmd.Username, "username", "", "Username claim")
	fs.DurationVar(&cmd.TTL, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRATION)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s issue-token -sub <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Issue a signed token using JWT_SECRET.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Subject == "" {
		fs.Usage()
		return errors.New("-sub is required")
	}
	return nil
}

func (cmd *IssueTokenCommand) Run() error {
	cfg := cmd.auth
	if cmd.TTL > 0 {
		cfg.TokenLifetime = cmd.TTL
	}
	if cfg.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	token, err := auth.NewService(cfg).IssueToken(&entities.User{ID: cmd.Subject, Username: cmd.Username})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Out, token)
	return err
}
