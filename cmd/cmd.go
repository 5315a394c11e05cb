// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/formatter"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

// setupCommand writes the config template and prepares the token database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage: "Create config.toml and initialize the token database",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Roll back all migrations and recreate the schema, discarding the stored token",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the Spotify login lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify in the browser and store the access token",
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored access token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show whether an access token is stored",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// searchCommand runs a one-off catalog search
func searchCommand(r *Runner) *cli.Command {
	formats := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		formats[i] = string(f)
	}

	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search for tracks with a playable preview",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (" + strings.Join(formats, ", ") + ")",
				Value:   string(formatter.Text),
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of tracks to request",
			},
		},
		Action: r.Search,
	}
}

// playCommand launches the terminal player.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive player",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mpd",
				Usage: "MPD address (host:port), overrides mpd.address",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the player is open",
				Value: "./tmp/jukebox-tui.log",
			},
		},
		Action: r.Play,
	}
}

// serveCommand serves the login, callback and player pages.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web player",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, overrides server.host and server.port",
			},
			&cli.BoolFlag{
				Name:  "secure-cookies",
				Usage: "Mark cookies Secure when served behind TLS",
			},
		},
		Action: r.Serve,
	}
}
