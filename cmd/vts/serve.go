package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/in-toto/go-vts/internal/api"
	"github.com/in-toto/go-vts/internal/api/router"
	"github.com/in-toto/go-vts/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the timestamping server",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Address to listen on",
			},
		}, keyFlags()...),
		Action: func(cmd *cli.Context) error {
			cfg := conf
			if cmd.IsSet("listen") {
				cfg.Server.ListenAddress = cmd.String("listen")
			}

			applyKeyFlags(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := api.InitNewServer(ctx, cfg)
			if err != nil {
				return errors.Wrap(err, "failure to initialize server")
			}

			router.Init(s)
			kid, err := s.Service.KeyID()
			if err == nil {
				log.Infof("serving with key %s", kid)
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- s.Start()
			}()

			var startErr error
			select {
			case startErr = <-errCh:
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			errs := s.Shutdown(shutdownCtx)
			for _, err := range errs {
				log.Errorf("shutdown: %w", err)
			}

			if startErr != nil {
				return startErr
			}

			if len(errs) > 0 {
				return errors.Wrap(errs[0], "failure during shutdown")
			}

			return nil
		},
	}
}
