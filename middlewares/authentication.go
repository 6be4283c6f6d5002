// SPX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"todoapp-server/apikeys"
	"todoapp-server/db"
	"todoapp-server/models"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the wire token on authenticated requests.
const APIKeyHeader = "X-API-Key"

// VerifyAPIKeyMiddleware authenticates a request through the key lifecycle
// manager and attaches the resolved user to the context. A missing header,
// a malformed token, an unknown or expired key, and a secret mismatch all
// produce the same 401; clients learn nothing about why a token failed.
func VerifyAPIKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		token := c.Request().Header.Get(APIKeyHeader)
		if token == "" {
			logger.Error("API key header missing.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Unauthorized",
			}
		}

		manager := apikeys.NewManager(db.Conn)
		user, err := manager.Resolve(token)
		if err != nil {
			if errors.Is(err, apikeys.ErrInvalidToken) {
				logger.Error("API key rejected.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Unauthorized",
				}
			}
			logger.Errorf("API key resolution failed: %v", err)
			return echo.ErrInternalServerError
		}

		c.Set("user", user)
		c.Set("api_key_token", token)
		return next(c)
	}
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	if user, ok := c.Get("user").(*models.User); ok {
		return user, nil
	}
	return nil, errors.New("no authenticated user found")
}

// GetPresentedToken returns the wire token the current request
// authenticated with.
func GetPresentedToken(c echo.Context) (string, error) {
	if token, ok := c.Get("api_key_token").(string); ok && token != "" {
		return token, nil
	}
	return "", errors.New("no API key token on request")
}
