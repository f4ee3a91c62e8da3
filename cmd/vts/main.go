package main

import (
	"fmt"
	"os"

	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// conf is loaded once per invocation in the app's Before hook.
var conf = config.Default()

// globalFlagKeys maps global flags onto configuration keys.
var globalFlagKeys = map[string]string{
	"server":      "client.server_url",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"log-backend": "log.backend",
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "vts",
		Usage: "Verifiable timestamping service",
		Commands: []*cli.Command{
			ServeCommand(),
			KeygenCommand(),
			KeyCommand(),
			SignCommand(),
			VerifyCommand(),
			ProvidersCommand(),
			ConfigCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (yaml, json or toml)",
				EnvVars: []string{"VTS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "URL of the timestamping server used by client commands",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text or json)",
			},
			&cli.StringFlag{
				Name:  "log-backend",
				Usage: "Logging library (logrus or zerolog)",
			},
		},
		Before: func(c *cli.Context) error {
			v := viper.New()
			for flag, key := range globalFlagKeys {
				if c.IsSet(flag) {
					v.Set(key, c.String(flag))
				}
			}

			cfg, err := config.Load(v, c.String("config"))
			if err != nil {
				return errors.Wrap(err, "failure to load vts configuration")
			}

			logger, err := newLogger(cfg.Log, c.App.ErrWriter)
			if err != nil {
				return errors.Wrap(err, "failure to initialize logger")
			}

			log.SetLogger(logger)
			log.Debugf("loaded configuration (log level %s, key provider %s)", cfg.Log.Level, cfg.Keys.Provider)
			conf = cfg
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vts: %v\n", err)
		os.Exit(1)
	}
}
