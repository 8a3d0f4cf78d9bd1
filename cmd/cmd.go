// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
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
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "api-url",
						Usage: "Base URL of the notes API, e.g. https://vidnexus.example.com/api",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your session",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Check whether the stored session is signed in",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "login",
				Usage: "Sign in with a username and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Account username (prompted when empty)",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when empty)",
						Sources: cli.EnvVars("VNX_PASSWORD"),
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Account username (prompted when empty)",
					},
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Email address (prompted when empty)",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted twice when empty)",
						Sources: cli.EnvVars("VNX_PASSWORD"),
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "End the session and forget its cookies",
				Action: r.AuthLogout,
			},
			{
				Name:  "import",
				Usage: "Reuse a browser session from a \"Copy as cURL\" command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// notesCommand handles study note operations
func notesCommand(r *Runner) *cli.Command {
	idArg := []cli.Argument{&cli.StringArg{Name: "id"}}

	return &cli.Command{
		Name:    "notes",
		Aliases: []string{"n"},
		Usage:   "Generate, browse and export study notes",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your notes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Order: newest, oldest, a-z or z-a",
						Value: "newest",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Only show notes whose URL contains this text",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.NotesList,
			},
			{
				Name:  "create",
				Usage: "Generate notes for a YouTube video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.NotesCreate,
			},
			{
				Name:      "show",
				Usage:     "Print a note",
				Arguments: idArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Section to print: summary, flashcards, quiz or all",
						Value:   "all",
					},
					&cli.BoolFlag{
						Name:  "render",
						Usage: "Render as styled Markdown",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local cache without contacting the server",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.NotesShow,
			},
			{
				Name:      "export",
				Usage:     "Export a note to files",
				Arguments: idArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: markdown, csv, text or json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.BoolFlag{
						Name:  "thumbnail",
						Usage: "Download the video thumbnail with Markdown exports",
					},
				},
				Action: r.NotesExport,
			},
			{
				Name:      "copy",
				Usage:     "Copy a note's summary to the clipboard",
				Arguments: idArg,
				Action:    r.NotesCopy,
			},
			{
				Name:      "open",
				Usage:     "Open a note's video in the browser",
				Arguments: idArg,
				Action:    r.NotesOpen,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a note",
				Arguments: idArg,
				Action:    r.NotesDelete,
			},
		},
	}
}

// exportCommand handles bulk exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Bulk export operations",
		Commands: []*cli.Command{
			{
				Name:  "all",
				Usage: "Export every note with a manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: markdown, csv, text or json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent exports (1-10)",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Note fetches per second",
					},
					&cli.BoolFlag{
						Name:  "thumbnail",
						Usage: "Download video thumbnails with Markdown exports",
					},
				},
				Action: r.ExportAll,
			},
		},
	}
}

// apiCommand handles raw calls through the session gateway
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls with the stored session",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "delete",
				Usage: "Direct DELETE",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.APIDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "start",
				Usage: "First screen, e.g. /dashboard or /notes/3",
				Value: "/",
			},
		},
		Action: r.TUI,
	}
}

// devCommand runs the local development backend.
func devCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dev",
		Usage: "Development helpers",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve an in-memory notes API with a stub generator",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Listen host (default from config)",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Listen port (default from config)",
					},
					&cli.StringFlag{
						Name:    "secret",
						Usage:   "Token signing secret, at least 32 characters",
						Sources: cli.EnvVars("VNX_JWT_SECRET"),
					},
					&cli.BoolFlag{
						Name:  "demo",
						Usage: "Create a demo user (demo / demo-password)",
					},
				},
				Action: r.DevServe,
			},
		},
	}
}
