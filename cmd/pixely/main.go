package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/pixely"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		exit(err.Error(), 1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "pixely"
	app.Usage = "A command-line tool for converting images to pure HTML and CSS."
	app.UsageText = "1) pixely [options] [file|url]\n" +
		/*      */ "   2) pixely [options] - < [file]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "folder,f",
			Usage: "`FOLDER` to write pixely.html and pixely.css to.",
			Value: pixely.DefaultOutputDir,
		},
		cli.Float64Flag{
			Name:  "duration,d",
			Usage: "`SECONDS` one loop of an animated GIF should take.",
			Value: pixely.DefaultAnimationDuration,
		},
		cli.Float64Flag{
			Name:  "scale,s",
			Usage: "`SCALE` at which to generate the image. A whole number is recommended.",
			Value: pixely.DefaultScale,
		},
		cli.StringFlag{
			Name:  "config,c",
			Usage: "YAML `FILE` with source, output, scale, duration and class keys. Flags take precedence.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Logs decoding and generation details to stderr.",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	logger := newLogger(c.Bool("verbose"))

	src := c.Args().First()
	var opts []pixely.ConfigOpt
	if path := c.String("config"); path != "" {
		file, err := pixely.ReadConfigFile(path)
		if err != nil {
			return err
		}
		if src == "" {
			src = file.Source
		}
		opts = append(opts, file.Options()...)
	}
	opts = append(opts, flagOptions(c)...)

	cfg, err := pixely.NewConfig(src, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := pixely.NewRenderer(pixely.WithLogger(logger))

	spin := newSpinner(os.Stderr, "Working... ")
	spin.Start()
	res := <-renderer.RenderAsync(ctx, cfg)
	spin.Stop()
	if res.Err != nil {
		return res.Err
	}

	if err := export(cfg.OutputDir, res.Output); err != nil {
		return err
	}
	logger.Debug("wrote output", "dir", cfg.OutputDir, "class", cfg.ClassName)
	fmt.Println("Done!")
	return nil
}

// flagOptions only returns options for flags given on the command line, so
// they override the config file without their defaults masking it.
func flagOptions(c *cli.Context) []pixely.ConfigOpt {
	var opts []pixely.ConfigOpt
	if isSet(c, "folder", "f") {
		opts = append(opts, pixely.WithOutputDir(c.String("folder")))
	}
	if isSet(c, "duration", "d") {
		opts = append(opts, pixely.WithAnimationDuration(c.Float64("duration")))
	}
	if isSet(c, "scale", "s") {
		opts = append(opts, pixely.WithScale(c.Float64("scale")))
	}
	return opts
}

// isSet reports whether the flag was given under any of its names.
func isSet(c *cli.Context, names ...string) bool {
	for _, name := range names {
		if c.IsSet(name) {
			return true
		}
	}
	return false
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func exit(msg string, code int) {
	fmt.Println(msg)
	os.Exit(code)
}
