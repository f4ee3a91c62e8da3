package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/protocol"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a key pair and write it as raw .bin files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "private-key",
				Usage: "Path to write the 32-byte signing key to (defaults to keys.private_key_path)",
			},
			&cli.StringFlag{
				Name:  "public-key",
				Usage: "Path to write the 33-byte verification key to (defaults to keys.public_key_path)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing key files",
			},
		},
		Action: func(cmd *cli.Context) error {
			privPath := conf.Keys.PrivateKeyPath
			if cmd.IsSet("private-key") {
				privPath = cmd.String("private-key")
			}

			pubPath := conf.Keys.PublicKeyPath
			if cmd.IsSet("public-key") {
				pubPath = cmd.String("public-key")
			}

			if !cmd.Bool("force") {
				for _, p := range []string{privPath, pubPath} {
					if _, err := os.Stat(p); err == nil {
						return fmt.Errorf("refusing to overwrite existing key file %s (use --force)", p)
					}
				}
			}

			for _, p := range []string{privPath, pubPath} {
				if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
					return errors.Wrap(err, "failure to create key directory")
				}
			}

			kp, err := cryptoutil.GenerateKeyPair()
			if err != nil {
				return err
			}

			defer kp.Zero()
			if err := cryptoutil.SaveKeyPairFiles(kp, privPath, pubPath); err != nil {
				return errors.Wrap(err, "failure to save key pair")
			}

			kid, err := cryptoutil.GeneratePublicKeyID(kp.VerificationKey())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.App.Writer, "private key: %s\n", privPath)
			fmt.Fprintf(cmd.App.Writer, "public key:  %s\n", pubPath)
			fmt.Fprintf(cmd.App.Writer, "public-key:  %s\n", protocol.EncodeVerificationKey(kp.VerificationKey()))
			fmt.Fprintf(cmd.App.Writer, "key id:      %s\n", kid)
			return nil
		},
	}
}
