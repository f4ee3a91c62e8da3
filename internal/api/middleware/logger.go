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

package middleware

import (
	"github.com/dropbox/godropbox/time2"
	"github.com/in-toto/go-vts/log"
	"github.com/labstack/echo/v4"
)

// RequestLogger logs one line per request once the response has been written.
// Handler errors are rendered here so the logged status is the final one.
func RequestLogger(clock time2.Clock) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := clock.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			log.Infof("%s %s status=%d bytes=%d latency=%s request_id=%s",
				req.Method,
				req.URL.Path,
				res.Status,
				res.Size,
				clock.Now().Sub(start),
				res.Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}
