package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
	"github.com/m-mizutani/kith/pkg/usecase/note"
	"github.com/urfave/cli/v3"
)

func noteCommand() *cli.Command {
	return &cli.Command{
		Name:    "note",
		Aliases: []string{"notes"},
		Usage:   "Write and read notes about people",
		Commands: []*cli.Command{
			noteAddCommand(),
			noteListCommand(),
		},
	}
}

func noteAddCommand() *cli.Command {
	var (
		cfg  config
		id   string
		text string
	)

	flags := []cli.Flag{
		personIDFlag(&id),
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"m"},
			Usage:       "Note text",
			Destination: &text,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "add",
		Usage: "Add a note to a person",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			n, err := note.New(e.people).Add(e.ctx, model.PersonID(id), text)
			if err != nil {
				return goerr.Wrap(err, "failed to add note")
			}

			fmt.Fprintf(c.Root().Writer, "Note added: %s\n", n.ID)
			return nil
		},
	}
}

func noteListCommand() *cli.Command {
	var (
		cfg   config
		id    string
		tag   string
		limit int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Aliases:     []string{"i"},
			Usage:       "Only show notes of this person",
			Sources:     cli.EnvVars("KITH_PERSON_ID"),
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "tag",
			Aliases:     []string{"t"},
			Usage:       "Only show notes of people with this tag",
			Destination: &tag,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum number of notes to show (0 for all)",
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List notes, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			uc := note.New(e.people)
			w := c.Root().Writer

			if id != "" {
				notes, err := uc.List(e.ctx, model.PersonID(id))
				if err != nil {
					return goerr.Wrap(err, "failed to list notes")
				}
				for _, n := range notes {
					fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Timestamp.Local().Format("2006-01-02 15:04:05"), n.Text)
				}
				return nil
			}

			opts := note.FeedOptions{Limit: int(limit)}
			if tag != "" {
				parsed, err := model.ParseTag(tag)
				if err != nil {
					return err
				}
				opts.Tag = parsed
			}

			entries, err := uc.Feed(e.ctx, opts)
			if err != nil {
				return goerr.Wrap(err, "failed to list notes")
			}
			for _, n := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s (%s)\t%s\n",
					n.Timestamp.Local().Format("2006-01-02 15:04:05"),
					n.PersonTag,
					n.PersonName,
					n.PersonRelation,
					n.Text,
				)
			}
			return nil
		},
	}
}
