package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
	"github.com/m-mizutani/kith/pkg/usecase/person"
	"github.com/urfave/cli/v3"
)

func personCommand() *cli.Command {
	return &cli.Command{
		Name:    "person",
		Aliases: []string{"people"},
		Usage:   "Manage people",
		Commands: []*cli.Command{
			personAddCommand(),
			personListCommand(),
			personShowCommand(),
			personUpdateCommand(),
			personDeleteCommand(),
			personSearchCommand(),
			personVisitCommand(),
			personImportCommand(),
		},
	}
}

func printPeople(w io.Writer, people []*model.Person) {
	for _, p := range people {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d notes\t%s\n",
			p.ID,
			p.Name,
			p.Relation,
			p.Tag,
			len(p.Notes),
			p.LastVisited.Local().Format("2006-01-02 15:04:05"),
		)
	}
}

func personIDFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "id",
		Aliases:     []string{"i"},
		Usage:       "Person ID",
		Sources:     cli.EnvVars("KITH_PERSON_ID"),
		Destination: dst,
		Required:    true,
	}
}

func personAddCommand() *cli.Command {
	var (
		cfg   config
		input model.PersonInput
		tag   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Name of the person",
			Destination: &input.Name,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "relation",
			Aliases:     []string{"r"},
			Usage:       "How you know them (friend, cousin, ...)",
			Destination: &input.Relation,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "tag",
			Aliases:     []string{"t"},
			Usage:       "Tag (red, yellow, green)",
			Value:       string(model.TagGreen),
			Destination: &tag,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "Free text description",
			Destination: &input.Description,
		},
		&cli.StringFlag{
			Name:        "image",
			Usage:       "URI of a picture of the person",
			Destination: &input.Image,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "add",
		Usage: "Add a person",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			parsed, err := model.ParseTag(tag)
			if err != nil {
				return err
			}
			input.Tag = parsed
			input.LastVisited = time.Now().UTC()

			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := person.New(e.people).Add(e.ctx, input)
			if err != nil {
				return goerr.Wrap(err, "failed to add person")
			}

			fmt.Fprintf(c.Root().Writer, "Person added: %s\n", p.ID)
			return nil
		},
	}
}

func listFlags(tag, sort *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tag",
			Aliases:     []string{"t"},
			Usage:       "Only show people with this tag",
			Destination: tag,
		},
		&cli.StringFlag{
			Name:        "sort",
			Aliases:     []string{"s"},
			Usage:       "Sort order (recent, name); stored order when empty",
			Destination: sort,
		},
	}
}

func listOptions(tag, sort string) (person.ListOptions, error) {
	opts := person.ListOptions{Sort: person.SortOrder(sort)}
	if tag != "" {
		parsed, err := model.ParseTag(tag)
		if err != nil {
			return opts, err
		}
		opts.Tag = parsed
	}
	return opts, nil
}

func personListCommand() *cli.Command {
	var (
		cfg       config
		tag, sort string
	)

	flags := listFlags(&tag, &sort)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List people",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			opts, err := listOptions(tag, sort)
			if err != nil {
				return err
			}

			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			people, err := person.New(e.people).List(e.ctx, opts)
			if err != nil {
				return goerr.Wrap(err, "failed to list people")
			}

			printPeople(c.Root().Writer, people)
			return nil
		},
	}
}

func personSearchCommand() *cli.Command {
	var (
		cfg       config
		query     string
		tag, sort string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Text to look for in name, relation and description",
			Sources:     cli.EnvVars("KITH_SEARCH_QUERY"),
			Destination: &query,
			Required:    true,
		},
	}
	flags = append(flags, listFlags(&tag, &sort)...)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "search",
		Usage: "Search people by name, relation or description",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			opts, err := listOptions(tag, sort)
			if err != nil {
				return err
			}

			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			people, err := person.New(e.people).Search(e.ctx, query, opts)
			if err != nil {
				return goerr.Wrap(err, "failed to search people")
			}

			printPeople(c.Root().Writer, people)
			return nil
		},
	}
}

func personShowCommand() *cli.Command {
	var (
		cfg config
		id  string
	)

	flags := []cli.Flag{personIDFlag(&id)}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show a person with their notes and mark them visited",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := person.New(e.people).Show(e.ctx, model.PersonID(id))
			if err != nil {
				return goerr.Wrap(err, "failed to show person")
			}

			return printJSON(c.Root().Writer, p)
		},
	}
}

func personUpdateCommand() *cli.Command {
	var (
		cfg         config
		id          string
		name        string
		relation    string
		tag         string
		description string
		image       string
	)

	flags := []cli.Flag{
		personIDFlag(&id),
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name", Destination: &name},
		&cli.StringFlag{Name: "relation", Aliases: []string{"r"}, Usage: "New relation", Destination: &relation},
		&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "New tag (red, yellow, green)", Destination: &tag},
		&cli.StringFlag{Name: "description", Usage: "New description", Destination: &description},
		&cli.StringFlag{Name: "image", Usage: "New picture URI", Destination: &image},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "update",
		Usage: "Change fields of a person; unset flags are left alone",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var edit person.Edit
			if c.IsSet("name") {
				edit.Name = &name
			}
			if c.IsSet("relation") {
				edit.Relation = &relation
			}
			if c.IsSet("tag") {
				parsed, err := model.ParseTag(tag)
				if err != nil {
					return err
				}
				edit.Tag = &parsed
			}
			if c.IsSet("description") {
				edit.Description = &description
			}
			if c.IsSet("image") {
				edit.Image = &image
			}

			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := person.New(e.people).Update(e.ctx, model.PersonID(id), edit)
			if err != nil {
				return goerr.Wrap(err, "failed to update person")
			}

			fmt.Fprintf(c.Root().Writer, "Person updated: %s\n", p.ID)
			return nil
		},
	}
}

func personDeleteCommand() *cli.Command {
	var (
		cfg config
		id  string
	)

	flags := []cli.Flag{personIDFlag(&id)}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a person and all their notes",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := person.New(e.people).Delete(e.ctx, model.PersonID(id)); err != nil {
				return goerr.Wrap(err, "failed to delete person")
			}

			fmt.Fprintf(c.Root().Writer, "Person deleted: %s\n", id)
			return nil
		},
	}
}

func personVisitCommand() *cli.Command {
	var (
		cfg config
		id  string
	)

	flags := []cli.Flag{personIDFlag(&id)}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "visit",
		Usage: "Set a person's last visited time to now",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := person.New(e.people).Visit(e.ctx, model.PersonID(id)); err != nil {
				return goerr.Wrap(err, "failed to update last visited")
			}

			fmt.Fprintf(c.Root().Writer, "Person visited: %s\n", id)
			return nil
		},
	}
}

func personImportCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"f"},
			Usage:       "Path to a YAML file with a list of people",
			Sources:     cli.EnvVars("KITH_IMPORT_INPUT"),
			Destination: &inputPath,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Add people from a YAML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := os.Open(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to open input file", goerr.V("path", inputPath))
			}
			defer f.Close()

			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			added, err := person.New(e.people).Import(e.ctx, f)
			if err != nil {
				return goerr.Wrap(err, "failed to import people", goerr.V("path", inputPath))
			}

			fmt.Fprintf(c.Root().Writer, "Imported %d people\n", len(added))
			return nil
		},
	}
}
