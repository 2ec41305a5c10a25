package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/usecase/profile"
	"github.com/urfave/cli/v3"
)

func locationCommand() *cli.Command {
	return &cli.Command{
		Name:    "location",
		Aliases: []string{"loc"},
		Usage:   "Record and browse your location history",
		Commands: []*cli.Command{
			locationAddCommand(),
			locationTrackCommand(),
			locationListCommand(),
		},
	}
}

func locationAddCommand() *cli.Command {
	var (
		cfg     config
		address string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "address",
			Aliases:     []string{"a"},
			Usage:       "Address of the place",
			Destination: &address,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "add",
		Usage: "Record a visited address",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := profile.New(e.profile).AddLocation(e.ctx, address); err != nil {
				return goerr.Wrap(err, "failed to add location")
			}
			fmt.Fprintf(c.Root().Writer, "Location added: %s\n", address)
			return nil
		},
	}
}

func locationTrackCommand() *cli.Command {
	var (
		cfg      config
		lat, lon float64
		address  string
	)

	flags := []cli.Flag{
		&cli.FloatFlag{Name: "lat", Usage: "Latitude", Destination: &lat, Required: true},
		&cli.FloatFlag{Name: "lon", Usage: "Longitude", Destination: &lon, Required: true},
		&cli.StringFlag{
			Name:        "address",
			Aliases:     []string{"a"},
			Usage:       "Reverse-geocoded address; coordinates are used when empty",
			Destination: &address,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "track",
		Usage: "Record a position with coordinates",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			loc, err := profile.New(e.profile).Track(e.ctx, lat, lon, address)
			if err != nil {
				return goerr.Wrap(err, "failed to track location")
			}
			fmt.Fprintf(c.Root().Writer, "Location added: %s\n", loc.Address)
			return nil
		},
	}
}

func locationListCommand() *cli.Command {
	var (
		cfg   config
		query string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Only show addresses containing this text",
			Destination: &query,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List the location history, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := cfg.setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			locations, err := profile.New(e.profile).SearchLocations(e.ctx, query)
			if err != nil {
				return goerr.Wrap(err, "failed to list locations")
			}

			w := c.Root().Writer
			if len(locations) == 0 {
				fmt.Fprintln(w, "No location history available")
				return nil
			}
			for _, loc := range locations {
				coords := "-"
				if loc.HasCoordinates() {
					coords = fmt.Sprintf("%.6f,%.6f", *loc.Latitude, *loc.Longitude)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", loc.Timestamp.Local().Format("2006-01-02 15:04:05"), coords, loc.Address)
			}
			return nil
		},
	}
}
