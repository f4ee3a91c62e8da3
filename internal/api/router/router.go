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

package router

import (
	"github.com/google/uuid"
	"github.com/in-toto/go-vts/internal/api"
	"github.com/in-toto/go-vts/internal/api/handlers"
	"github.com/in-toto/go-vts/internal/api/httperrors"
	vtsmiddleware "github.com/in-toto/go-vts/internal/api/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Init builds the echo instance for s and attaches every route.
func Init(s *api.Server) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httperrors.HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(vtsmiddleware.RequestLogger(s.Clock))
	e.Use(middleware.BodyLimit(s.Config.Server.BodyLimit))

	s.Echo = e
	s.Router = &api.Router{
		Root: e.Group(""),
	}

	s.Router.Routes = handlers.AttachAllRoutes(s)
}
