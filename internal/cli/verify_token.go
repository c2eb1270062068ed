package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/config"
)

// VerifyTokenCommand checks a token against JWT_SECRET and prints its claims.
// Unlike the HTTP gate it reports which check failed.
type VerifyTokenCommand struct {
	Token string

	auth config.Auth
	In   io.Reader
	Out  io.Writer
}

func NewVerifyTokenCommand(cfg config.Auth) *VerifyTokenCommand {
	return &VerifyTokenCommand{auth: cfg, In: os.Stdin, Out: os.Stdout}
}

func (cmd *VerifyTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("verify-token", flag.ContinueOnError)

	fs.StringVar(&cmd.Token, "token", "", "Token to verify, or '-' to read it from stdin (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s verify-token -token <token>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Verify a token's signature and expiry using JWT_SECRET.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Token == "" {
		fs.Usage()
		return errors.New("-token is required")
	}
	return nil
}

type verifiedClaims struct {
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func (cmd *VerifyTokenCommand) Run() error {
	if cmd.auth.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	token := cmd.Token
	if token == "-" {
		line, err := readLine(cmd.In)
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	claims, err := auth.NewService(cmd.auth).VerifyToken(strings.TrimSpace(token))
	if err != nil {
		return fmt.Errorf("token rejected: %s: %w", failureKind(err), err)
	}

	out := verifiedClaims{Subject: claims.Subject, Username: claims.Username}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}

	enc := json.NewEncoder(cmd.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "invalid signature"
	default:
		return "malformed"
	}
}
