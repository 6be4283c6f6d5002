// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"todoapp-server/apikeys"
	"todoapp-server/db"
	"todoapp-server/middlewares"

	"github.com/labstack/echo/v4"
)

// LogoutHandler godoc
// @Summary      Logout a user
// @Description  Revokes the API key presented on this request.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Success      200 {object} GenericResponse   "Logout successful"
// @Failure      401 {object} echo.HTTPError    "Unauthorized"
// @Failure      500 {object} echo.HTTPError    "Internal server error"
// @Router       /users/logout [post]
func LogoutHandler(c echo.Context) error {
	logger := c.Logger()

	token, err := middlewares.GetPresentedToken(c)
	if err != nil {
		logger.Error("No API key on request:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	manager := apikeys.NewManager(db.Conn)
	if err := manager.Revoke(token); err != nil {
		logger.Errorf("Failed to revoke API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("User logged out successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "successful"})
}
