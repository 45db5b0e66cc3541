package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/palgen"
	"github.com/urfave/cli/v2"
)

const defaultDB = "palgen.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func withDB(c *cli.Context, fn func(*palgen.PalGen) error) error {
	db, err := palgen.NewPaletteDB(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	if err := fn(palgen.New(db, newLogger(c))); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

// writeOutput runs fn against a buffer and only touches the destination once
// fn has succeeded, so a failure never truncates an existing file.
func writeOutput(c *cli.Context, fn func(io.Writer) error) error {
	b := new(bytes.Buffer)
	if err := fn(b); err != nil {
		return err
	}

	if file := c.String("output"); file != "" && file != "-" {
		return ioutil.WriteFile(file, b.Bytes(), 0644)
	}

	_, err := c.App.Writer.Write(b.Bytes())
	return err
}

func newApp(stdout io.Writer) (*cli.App, error) {
	app := cli.NewApp()

	app.Name = "palgen"
	app.Usage = "Raw RGB palette to source literal converter"
	app.Version = "1.0.0"
	app.Writer = stdout

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write to `FILE` instead of standard output",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PALGEN_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Print a palette as a sequence literal",
			Description: "Reads FILE as raw RGB triplets and prints each color packed as 0xRRGGBB.",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					EnvVars: []string{"PALGEN_FILE"},
					Value:   palgen.DefaultFile,
					Usage:   "palette `FILE` used when none is given",
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "convert the palette stored as `NAME` in the database",
				},
			},
			Action: func(c *cli.Context) error {
				if name := c.String("name"); name != "" {
					return withDB(c, func(p *palgen.PalGen) error {
						return p.ConvertNamed(c.App.Writer, name)
					})
				}

				file := c.String("file")
				if c.NArg() > 0 {
					file = c.Args().First()
				}

				p := palgen.New(nil, newLogger(c))
				if err := p.Convert(c.App.Writer, file); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Store a palette file in the database",
			ArgsUsage: "NAME FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withDB(c, func(p *palgen.PalGen) error {
					return p.Import(c.Args().Get(0), c.Args().Get(1))
				})
			},
		},
		{
			Name:      "export",
			Usage:     "Write a stored palette as a raw palette file",
			ArgsUsage: "NAME",
			Flags:     []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withDB(c, func(p *palgen.PalGen) error {
					return writeOutput(c, func(w io.Writer) error {
						return p.Export(w, c.Args().First())
					})
				})
			},
		},
		{
			Name:  "list",
			Usage: "List palettes stored in the database",
			Action: func(c *cli.Context) error {
				return withDB(c, func(p *palgen.PalGen) error {
					entries, err := p.List()
					if err != nil {
						return err
					}
					for _, e := range entries {
						fmt.Fprintf(c.App.Writer, "%s\t%d\t%s\n", e.Name, e.Colors, e.SHA1)
					}
					return nil
				})
			},
		},
		{
			Name:      "scan",
			Usage:     "Import every palette file found under a directory",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withDB(c, func(p *palgen.PalGen) error {
					return p.Scan(c.Args().First())
				})
			},
		},
		{
			Name:      "quantize",
			Usage:     "Generate a raw palette file from an image",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				outputFlag,
				&cli.IntFlag{
					Name:    "colors",
					Aliases: []string{"n"},
					Value:   64,
					Usage:   "maximum number of colors",
				},
				&cli.IntFlag{
					Name:  "size",
					Value: 256,
					Usage: "scale the image to fit within `SIZE` pixels first, 0 to disable",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p := palgen.New(nil, newLogger(c))
				if err := writeOutput(c, func(w io.Writer) error {
					return p.Quantize(w, c.Args().First(), c.Int("colors"), c.Int("size"))
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app, nil
}

func main() {
	app, err := newApp(os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
