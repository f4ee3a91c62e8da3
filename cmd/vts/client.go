package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/client"
	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/protocol"
	"github.com/in-toto/go-vts/signer"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func KeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "Fetch the server's verification key",
		Action: func(cmd *cli.Context) error {
			resp, err := newClient().RequestKey(cmd.Context)
			if err != nil {
				return errors.Wrap(err, "failure to fetch key")
			}

			return writeJSON(cmd.App.Writer, resp)
		},
	}
}

func SignCommand() *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Timestamp a message and print the signed response",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Message to timestamp; read from stdin when omitted",
			},
			&cli.StringFlag{
				Name:  "signature-out",
				Usage: "Also write the raw 64-byte signature to this file",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Sign with the configured key provider instead of a server",
			},
		}, keyFlags()...),
		Action: func(cmd *cli.Context) error {
			message := cmd.String("message")
			if !cmd.IsSet("message") {
				b, err := io.ReadAll(cmd.App.Reader)
				if err != nil {
					return errors.Wrap(err, "failure to read message from stdin")
				}

				message = string(b)
			}

			var resp protocol.SignResponse
			var err error
			if cmd.Bool("local") {
				cfg := conf
				applyKeyFlags(cmd, &cfg)
				resp, err = signLocal(cmd, cfg, message)
			} else {
				resp, err = newClient().RequestTimestamp(cmd.Context, message)
			}

			if err != nil {
				return errors.Wrap(err, "failure to timestamp message")
			}

			if path := cmd.String("signature-out"); path != "" {
				sig, err := protocol.DecodeSignature(resp.Signature)
				if err != nil {
					return err
				}

				if err := cryptoutil.WriteSignatureFile(sig, path); err != nil {
					return err
				}
			}

			return writeJSON(cmd.App.Writer, resp)
		},
	}
}

func signLocal(cmd *cli.Context, cfg config.Config, message string) (protocol.SignResponse, error) {
	sp, err := signer.NewSignerProviderFromConfigMap(cfg.Keys.Provider, cfg.Keys.ProviderOptions())
	if err != nil {
		return protocol.SignResponse{}, err
	}

	kp, err := sp.KeyPair(cmd.Context)
	if err != nil {
		return protocol.SignResponse{}, vts.ErrKeyUnavailable{Err: err}
	}

	svc, err := vts.NewService(kp)
	if err != nil {
		return protocol.SignResponse{}, err
	}

	defer svc.Close()
	return svc.Sign(cmd.Context, message)
}

func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify a signed response",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "response",
				Aliases: []string{"r"},
				Usage:   "File holding the JSON sign response, - for stdin",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "public-key",
				Aliases: []string{"k"},
				Usage:   "Base64 verification key; fetched from the server when no key is given",
			},
			&cli.StringFlag{
				Name:  "public-key-file",
				Usage: "Raw 33-byte verification key file",
			},
			&cli.StringFlag{
				Name:  "signature",
				Usage: "Raw 64-byte signature file to check instead of the response's signature field",
			},
		},
		Action: func(cmd *cli.Context) error {
			resp, err := readResponse(cmd)
			if err != nil {
				return err
			}

			if path := cmd.String("signature"); path != "" {
				sig, err := cryptoutil.ReadSignatureFile(path)
				if err != nil {
					return err
				}

				resp.Signature = protocol.EncodeSignature(sig)
			}

			publicKey, err := verificationKey(cmd)
			if err != nil {
				return err
			}

			if err := vts.VerifyResponseDetailed(resp, publicKey); err != nil {
				log.Debugf("verification failed: %w", err)
				return cli.Exit("signature is NOT valid", 1)
			}

			fmt.Fprintf(cmd.App.Writer, "signature is valid: message signed at %s\n", resp.TimeSigned)
			return nil
		},
	}
}

func readResponse(cmd *cli.Context) (protocol.SignResponse, error) {
	var r io.Reader = cmd.App.Reader
	if path := cmd.String("response"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return protocol.SignResponse{}, errors.Wrap(err, "failure to open response")
		}

		defer f.Close()
		r = f
	}

	resp := protocol.SignResponse{}
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return resp, errors.Wrap(err, "failure to parse response")
	}

	return resp, nil
}

func verificationKey(cmd *cli.Context) (string, error) {
	if cmd.IsSet("public-key") {
		return cmd.String("public-key"), nil
	}

	if path := cmd.String("public-key-file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(err, "failure to read public key")
		}

		vk, err := cryptoutil.ParseVerificationKey(b)
		if err != nil {
			return "", err
		}

		return protocol.EncodeVerificationKey(vk), nil
	}

	key, err := newClient().RequestKey(cmd.Context)
	if err != nil {
		return "", errors.Wrap(err, "failure to fetch key")
	}

	return key.PublicKey, nil
}

func newClient() *client.Client {
	return client.New(conf.Client.ServerURL,
		client.WithTimeout(conf.Client.Timeout),
		client.WithKeyCacheTTL(conf.Client.KeyCacheTTL),
	)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
