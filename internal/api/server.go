// Copyright 2025 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/log"
	"github.com/labstack/echo/v4"
)

type Router struct {
	Routes []*echo.Route
	Root   *echo.Group
}

// Server keeps every dependency of the HTTP service. It is built by wire (see
// wire.go); fields tagged `wire:"-"` are set afterwards by router.Init.
type Server struct {
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config  config.Config
	Clock   time2.Clock
	Service *vts.Service
}

func newServerWithComponents(
	cfg config.Config,
	clock time2.Clock,
	service *vts.Service,
) *Server {
	return &Server{
		Config:  cfg,
		Clock:   clock,
		Service: service,
	}
}

func (s *Server) Ready() bool {
	return s.Echo != nil && s.Router != nil && s.Service != nil && s.Clock != nil
}

// Start blocks serving on the configured listen address until Shutdown is
// called.
func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	log.Infof("vts listening on %s", s.Config.Server.ListenAddress)
	if err := s.Echo.Start(s.Config.Server.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and then zeroes
// the signing key. If echo gives up early, Close still blocks until the
// remaining signs have returned.
func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn("shutting down server")

	var errs []error
	if s.Echo != nil {
		if err := s.Echo.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down echo server: %w", err))
		}
	}

	if s.Service != nil {
		log.Debug("zeroing signing key")
		if err := s.Service.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}
