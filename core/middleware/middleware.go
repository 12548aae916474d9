package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/constants"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/controller"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
)

type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

// RequireUser extracts the caller identity from the X-User-ID header and
// stores it in the request context. This is identification only; there is
// deliberately no authentication layer in front of it.
func (m *Middleware) RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(constants.HeaderUserID)
			if raw == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "missing "+constants.HeaderUserID+" header")
			}
			if _, err := uuid.Parse(raw); err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "invalid "+constants.HeaderUserID+" header")
			}

			c.Set(constants.ContextUserID, raw)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request through the core logger.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			logger.Info("HTTP:Request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
			)
			return err
		}
	}
}

// UserID returns the identified caller stored by RequireUser.
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(constants.ContextUserID).(string)
	return id, ok && id != ""
}
