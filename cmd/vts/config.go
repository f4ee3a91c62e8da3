package main

import (
	"github.com/urfave/cli/v2"
)

func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as YAML with secrets redacted",
		Action: func(cmd *cli.Context) error {
			b, err := conf.Dump()
			if err != nil {
				return err
			}

			_, err = cmd.App.Writer.Write(b)
			return err
		},
	}
}
