package main

import (
	"context"
	"fmt"
	"os"

	"github.com/stone-age-io/termfetch/internal/app"
	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/output"
	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "termfetch: %v\n", err)
		os.Exit(1)
	}
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Usage:   "output format (text, json, yaml)",
	Value:   string(output.FormatText),
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "termfetch",
		Usage:   "Show machine telemetry, network identity and bandwidth",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				Sources: cli.EnvVars("TERMFETCH_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override logging.level (debug, info, warn, error)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Shutdown()
			return a.RunDashboard(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "hardware",
				Usage: "Print CPU, memory, OS and disk facts",
				Flags: []cli.Flag{formatFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					format, err := output.ParseFormat(cmd.String("format"))
					if err != nil {
						return err
					}
					a, err := newApp(cmd, true)
					if err != nil {
						return err
					}
					defer a.Shutdown()
					return a.Hardware(ctx, os.Stdout, os.Stderr, format)
				},
			},
			{
				Name:  "address",
				Usage: "Print a private or public IP address",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "private-v4, private-v6, public-v4 or public-v6",
						Value: string(collector.PrivateIPv4),
					},
					formatFlag,
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					kind, err := collector.ParseAddressKind(cmd.String("kind"))
					if err != nil {
						return err
					}
					format, err := output.ParseFormat(cmd.String("format"))
					if err != nil {
						return err
					}
					a, err := newApp(cmd, true)
					if err != nil {
						return err
					}
					defer a.Shutdown()
					return a.Address(ctx, kind, os.Stdout, os.Stderr, format)
				},
			},
			{
				Name:  "speedtest",
				Usage: "Measure download and upload throughput",
				Flags: []cli.Flag{formatFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					format, err := output.ParseFormat(cmd.String("format"))
					if err != nil {
						return err
					}
					a, err := newApp(cmd, true)
					if err != nil {
						return err
					}
					defer a.Shutdown()
					return a.SpeedTest(ctx, os.Stdout, os.Stderr, format)
				},
			},
		},
	}
}

func newApp(cmd *cli.Command, console bool) (*app.App, error) {
	return app.New(app.Options{
		ConfigPath: cmd.String("config"),
		LogLevel:   cmd.String("log-level"),
		Console:    console,
	}, version)
}
