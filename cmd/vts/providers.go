package main

import (
	"fmt"

	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/signer"
	"github.com/urfave/cli/v2"

	_ "github.com/in-toto/go-vts/signer/file"
	_ "github.com/in-toto/go-vts/signer/memory"
	_ "github.com/in-toto/go-vts/signer/static"
)

func ProvidersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List the available key providers and their options",
		Action: func(cmd *cli.Context) error {
			for _, entry := range signer.RegistryEntries() {
				fmt.Fprintln(cmd.App.Writer, entry.Name)
				for _, opt := range entry.Options {
					fmt.Fprintf(cmd.App.Writer, "  %-18s %s\n", opt.Name(), opt.Description())
				}
			}

			return nil
		},
	}
}

// keyFlags override the keys section of the configuration for one command.
func keyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "Key provider to load the signing key from (see vts providers)",
		},
		&cli.StringFlag{
			Name:  "private-key-file",
			Usage: "Path to the 32-byte signing key file",
		},
		&cli.StringFlag{
			Name:  "public-key-file",
			Usage: "Path to the 33-byte verification key file",
		},
		&cli.BoolFlag{
			Name:  "no-generate",
			Usage: "Fail instead of generating keys when the key files are missing",
		},
	}
}

func applyKeyFlags(cmd *cli.Context, cfg *config.Config) {
	if cmd.IsSet("provider") {
		cfg.Keys.Provider = cmd.String("provider")
	}

	if cmd.IsSet("private-key-file") {
		cfg.Keys.PrivateKeyPath = cmd.String("private-key-file")
	}

	if cmd.IsSet("public-key-file") {
		cfg.Keys.PublicKeyPath = cmd.String("public-key-file")
	}

	if cmd.Bool("no-generate") {
		cfg.Keys.Generate = false
	}
}
