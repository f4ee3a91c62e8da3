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

package key

import (
	"net/http"

	"github.com/in-toto/go-vts/internal/api"
	"github.com/in-toto/go-vts/log"
	"github.com/labstack/echo/v4"
)

func GetKeyRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/key", getKeyHandler(s))
}

func getKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := s.Service.Key()
		log.Debugf("GET /key at %s", resp.TimeRequested)
		return c.JSON(http.StatusOK, resp)
	}
}
