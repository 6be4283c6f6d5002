// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"net/mail"
	"todoapp-server/crypto"
	"todoapp-server/db"
	"todoapp-server/models"
	"todoapp-server/passwordcheck"

	"github.com/labstack/echo/v4"
)

// SignupHandler godoc
// @Summary      Register a new user
// @Description  Creates a new user account.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        signupRequest  body  SignupRequest  true  "Signup request payload"
// @Success      200 {object} SignupResponse 	 "Signup successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or invalid fields"
// @Failure      409 {object} echo.HTTPError     "Duplicate username or email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /users/ [post]
func SignupHandler(c echo.Context) error {
	logger := c.Logger()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid signup request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Username == "" {
		logger.Error("Username is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username field is required",
		}
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		logger.Error("Email validation failed:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Enter a valid email address.",
		}
	}

	if err := passwordcheck.ValidatePassword(req.Password); err != nil {
		logger.Error("Password validation failed:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	count := db.Conn.Where("email = ?", req.Email).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Error("This email is already registered.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Email address is already registered.",
		}
	}

	count = db.Conn.Where("username = ?", req.Username).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Error("This username is already registered.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Username is already registered.",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		// The unique constraints back up the checks above; a concurrent
		// signup with the same username or email lands here.
		logger.Errorf("Failed to create user: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Username or email is already registered.",
		}
	}

	logger.Info("User signed up successfully.")
	return c.JSON(http.StatusOK, SignupResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
