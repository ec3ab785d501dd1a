package main

import (
	"github.com/urfave/cli/v3"

	"pccopy/internal"
)

// newApp builds the root command. With no subcommand it opens the form.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    internal.AppID,
		Usage:   internal.AppDesc,
		Version: internal.GetVersionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "classic",
				Usage: "Use the classic single-window form",
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "Draw with ASCII symbols only",
			},
		},
		Before: r.Setup,
		Action: r.Form,
		Commands: []*cli.Command{
			copyCommand(r),
			planCommand(r),
			{
				Name:   "categories",
				Usage:  "List the categories and the folders they copy",
				Action: r.Categories,
			},
			configCommand(r),
		},
	}
}

func transferFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "old",
			Usage: "Name of the old computer",
		},
		&cli.StringFlag{
			Name:  "new",
			Usage: "Name of the new computer",
		},
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "Username whose profile is copied",
		},
		&cli.StringSliceFlag{
			Name:  "category",
			Usage: "Category to copy (repeatable)",
		},
	}
}

// copyCommand copies without the form
func copyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "copy",
		Usage: "Copy the selected categories from the old computer to the new one",
		Flags: append(transferFlags(), &cli.BoolFlag{
			Name:  "all",
			Usage: "Copy every category",
		}),
		Action: r.Copy,
	}
}

func planCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "plan",
		Usage:  "Show what a copy would move and whether it fits",
		Flags:  transferFlags(),
		Action: r.Plan,
	}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file (defaults to the user config dir)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
