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

package sign

import (
	"encoding/json"
	"net/http"

	"github.com/in-toto/go-vts/internal/api"
	"github.com/in-toto/go-vts/internal/api/httperrors"
	"github.com/in-toto/go-vts/log"
	"github.com/labstack/echo/v4"
)

// postSignPayload distinguishes a missing message from an empty one.
type postSignPayload struct {
	Message *string `json:"message"`
}

func PostSignRoute(s *api.Server) *echo.Route {
	return s.Router.Root.POST("/sign", postSignHandler(s))
}

func postSignHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body postSignPayload
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return httperrors.NewBadRequest("invalid JSON body: %v", err)
		}

		if body.Message == nil {
			return httperrors.NewBadRequest("missing field `message`")
		}

		resp, err := s.Service.Sign(ctx, *body.Message)
		if err != nil {
			return err
		}

		log.Debugf("POST /sign message=%q time-signed=%s signature=%s", resp.Message, resp.TimeSigned, resp.Signature)
		return c.JSON(http.StatusOK, resp)
	}
}
