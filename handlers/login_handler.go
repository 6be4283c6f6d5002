// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"time"
	"todoapp-server/apikeys"
	"todoapp-server/crypto"
	"todoapp-server/db"
	"todoapp-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates a user and returns an API key token.
// @Description  The token is shown exactly once; store it client-side and
// @Description  present it in the X-API-Key header on later requests.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} LoginResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /users/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Username == "" {
		logger.Error("Username is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	newCrypto := crypto.NewCrypto()
	user := models.User{}
	err := db.Conn.Where("username = ?", req.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Credentials are incorrect, please check your username and password",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := newCrypto.VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Credentials are incorrect, please check your username and password",
		}
	}

	manager := apikeys.NewManager(db.Conn)
	token, err := manager.Issue(&user, "login")
	if err != nil {
		logger.Errorf("Failed to issue API key: %v", err)
		return echo.ErrInternalServerError
	}

	now := time.Now()
	if err := db.Conn.Model(&user).Update("last_login", now).Error; err != nil {
		logger.Errorf("Failed to update last login: %v", err)
	}

	logger.Info("User logged in successfully.")
	return c.JSON(http.StatusOK, LoginResponse{
		ID:       user.ID,
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	})
}
