// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// playCommand searches for a track and starts playback
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Search YouTube Music and play the chosen track with its radio",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of search results to show (defaults to config)",
			},
		},
		Action: r.Play,
	}
}

// playlistCommand handles saved playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage saved playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show the tracks in a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "play",
				Usage: "Play a saved playlist from the top",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.PlaylistPlay,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist and its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to CSV, Markdown, or plain text",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (file or directory depending on format)",
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// dislikesCommand handles the never-play-again list
func dislikesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dislikes",
		Usage: "Manage disliked tracks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List disliked tracks",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DislikesList,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from the dislike list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "video-id",
					},
				},
				Action: r.DislikesRemove,
			},
			{
				Name:   "clear",
				Usage:  "Clear the entire dislike list",
				Action: r.DislikesClear,
			},
		},
	}
}

// setupCommand handles setup operations for configuration, database and authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the playlist and dislike database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "auth",
				Usage: "Configure proxy authentication from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for browser.json (default: ~/.ytmcli/browser.json)",
					},
				},
				Action: r.SetupAuth,
			},
			{
				Name:  "oauth",
				Usage: "Authenticate with a Google TV-type OAuth client",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "client-id",
						Usage:    "OAuth client ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "client-secret",
						Usage:    "OAuth client secret",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for oauth.json (default: ~/.ytmcli/oauth.json)",
					},
				},
				Action: r.SetupOAuth,
			},
		},
	}
}
