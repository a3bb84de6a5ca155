package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plusk0/gamelist/internal/catalog"
	"github.com/plusk0/gamelist/internal/config"
)

// cli carries the flag values and the application opened for the running
// command.
type cli struct {
	configFile string
	app        *application

	newApp func(config.Config) (*application, error)
	out    io.Writer
}

func newCLI() *cli {
	return &cli{newApp: newApplication, out: os.Stdout}
}

// execute runs the command line in args. The application is closed even
// when the command fails.
func (c *cli) execute(args []string) error {
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(c.out)
	err := root.Execute()
	return errors.Join(err, c.closeApp())
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamelist",
		Short: "Keep a personal catalog of video games",
		Long: `gamelist maintains a catalog of video games stored in a JSON file
(or SQLite database). Run without a command to open the window.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
		RunE: func(cmd *cobra.Command, args []string) error {
			runGUI(c.app)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./gamelist.yaml, .json or .toml if present)")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.exportCmd(),
		c.imageCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configFile, ".")
	if err != nil {
		return err
	}
	app, err := c.newApp(cfg)
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

func (c *cli) closeApp() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) listCmd() *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games, optionally filtered by title or platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, g := range c.app.store.Search(term) {
				fmt.Fprintf(out, "%d\t%s\n", i, g.Label())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&term, "search", "s", "", "case-insensitive title or platform substring")
	return cmd
}

// gameFlags binds one flag per game field.
func gameFlags(cmd *cobra.Command, g *catalog.Game) {
	cmd.Flags().StringVar(&g.ID, "id", g.ID, "game id")
	cmd.Flags().StringVar(&g.Title, "title", g.Title, "title")
	cmd.Flags().StringVar(&g.Platform, "platform", g.Platform, "platform")
	cmd.Flags().StringVar(&g.URL, "url", g.URL, "url")
	cmd.Flags().StringVar(&g.Image, "image", g.Image, "image file name in the images directory")
}

func (c *cli) addCmd() *cobra.Command {
	var g catalog.Game
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.store.Submit(catalog.AddMode(), g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d\n", c.app.store.Len()-1)
			return nil
		},
	}
	gameFlags(cmd, &g)
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var changes catalog.Game
	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Change fields of the game at INDEX; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			g, err := c.app.store.At(index)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			for name, dst := range map[string]*string{
				"id":       &g.ID,
				"title":    &g.Title,
				"platform": &g.Platform,
				"url":      &g.URL,
				"image":    &g.Image,
			} {
				if flags.Changed(name) {
					*dst, _ = flags.GetString(name)
				}
			}
			if _, err := c.app.store.Submit(catalog.EditMode(index), g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d\n", index)
			return nil
		},
	}
	gameFlags(cmd, &changes)
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the game at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := c.app.store.Delete(index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", index)
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as a source literal file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.exporter.Export(c.app.store.Games()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", c.app.exporter.Path)
			return nil
		},
	}
}

func (c *cli) imageCmd() *cobra.Command {
	var target int
	cmd := &cobra.Command{
		Use:   "image PATH",
		Short: "Copy an image into the images directory, optionally attaching it to a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.app.intake.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %s\n", name)
			if target < 0 {
				return nil
			}

			g, err := c.app.store.At(target)
			if err != nil {
				return err
			}
			g.Image = name
			if _, err := c.app.store.Submit(catalog.EditMode(target), g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "attached to %d\n", target)
			return nil
		},
	}
	cmd.Flags().IntVar(&target, "game", -1, "index of the game to attach the image to")
	return cmd
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q is not a number", s)
	}
	return i, nil
}
