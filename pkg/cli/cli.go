package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

// Option is a functional option for Run
type Option func(*cli.Command)

// WithWriter sets where command output is written
func WithWriter(w io.Writer) Option {
	return func(cmd *cli.Command) {
		cmd.Writer = w
	}
}

func Run(ctx context.Context, argv []string, opts ...Option) *Error {
	cmd := &cli.Command{
		Name:   "kith",
		Usage:  "Keep track of people, notes about them and where you have been",
		Writer: os.Stdout,
		Commands: []*cli.Command{
			personCommand(),
			noteCommand(),
			profileCommand(),
			locationCommand(),
		},
	}
	for _, opt := range opts {
		opt(cmd)
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}
