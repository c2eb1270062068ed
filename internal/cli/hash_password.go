package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/config"
)

// HashPasswordCommand prints a bcrypt hash for a password, e.g. to seed an
// account directly in the store.
type HashPasswordCommand struct {
	Cost  int
	Stdin bool

	In  io.Reader
	Out io.Writer
}

func NewHashPasswordCommand() *HashPasswordCommand {
	return &HashPasswordCommand{In: os.Stdin, Out: os.Stdout}
}

func (cmd *HashPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)

	fs.IntVar(&cmd.Cost, "cost", config.DefaultBcryptCost, "bcrypt work factor (4-31)")
	fs.BoolVar(&cmd.Stdin, "stdin", false, "Read the password from the first line of stdin instead of prompting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-password [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Hash a password with bcrypt. Prompts without echo unless -stdin is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HashPasswordCommand) Run() error {
	var (
		password string
		err      error
	)
	if cmd.Stdin {
		password, err = readLine(cmd.In)
	} else {
		password, err = promptPassword(os.Stderr)
	}
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := auth.HashPassword(password, cmd.Cost)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Out, hash)
	return err
}
