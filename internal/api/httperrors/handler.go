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

package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	vts "github.com/in-toto/go-vts"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/protocol"
	"github.com/labstack/echo/v4"
)

const (
	InvalidRequest = "Invalid request"
	KeyLoadError   = "Key load error"
)

// HTTPErrorHandler renders every handler error. Requests that match no route or
// no method get a plain text 400; everything else gets a JSON ErrorResponse.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	var keyErr vts.ErrKeyUnavailable
	switch {
	case errors.As(err, &keyErr):
		log.Errorf("failed to sign request: %w", err)
		msg = KeyLoadError
	case errors.As(err, &he):
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			log.Warnf("invalid request %s %s", c.Request().Method, c.Request().URL.Path)
			writeErr(c, c.String(http.StatusBadRequest, InvalidRequest))
			return
		}

		code = he.Code
		msg = fmt.Sprint(he.Message)
	default:
		log.Errorf("unhandled error: %w", err)
	}

	if c.Request().Method == http.MethodHead {
		writeErr(c, c.NoContent(code))
		return
	}

	writeErr(c, c.JSON(code, protocol.ErrorResponse{Error: msg}))
}

func writeErr(c echo.Context, err error) {
	if err != nil {
		log.Errorf("failed to write error response for %s: %w", c.Request().URL.Path, err)
	}
}

func NewBadRequest(format string, args ...interface{}) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}
