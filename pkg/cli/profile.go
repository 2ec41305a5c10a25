package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/usecase/profile"
	"github.com/urfave/cli/v3"
)

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage your own profile",
		Commands: []*cli.Command{
			profileShowCommand(),
			profileInitCommand(),
			profileSetCommand(),
		},
	}
}

func profileShowCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "show",
		Usage: "Show your profile and location history",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			details, err := profile.New(e.profile).Show(e.ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to show profile")
			}
			return printJSON(c.Root().Writer, details)
		},
	}
}

func profileInitCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "init",
		Usage: "Create an empty profile if there is none",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := profile.New(e.profile).Init(e.ctx); err != nil {
				return goerr.Wrap(err, "failed to initialize profile")
			}
			fmt.Fprintln(c.Root().Writer, "Profile ready")
			return nil
		},
	}
}

func profileSetCommand() *cli.Command {
	var (
		cfg   config
		input profile.Input
	)

	flags := []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Your name", Destination: &input.Name, Required: true},
		&cli.StringFlag{Name: "age", Usage: "Your age", Destination: &input.Age, Required: true},
		&cli.StringFlag{Name: "phone", Usage: "Your phone number", Destination: &input.PhoneNumber, Required: true},
		&cli.StringFlag{Name: "address", Usage: "Your address", Destination: &input.Address, Required: true},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "set",
		Usage: "Save your profile; the location history is kept",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := profile.New(e.profile).Save(e.ctx, input); err != nil {
				return goerr.Wrap(err, "failed to save profile")
			}
			fmt.Fprintln(c.Root().Writer, "Profile saved")
			return nil
		},
	}
}
