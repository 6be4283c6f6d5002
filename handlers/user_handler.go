// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"net/mail"
	"todoapp-server/crypto"
	"todoapp-server/db"
	"todoapp-server/middlewares"
	"todoapp-server/passwordcheck"

	"github.com/labstack/echo/v4"
)

// UpdateUserHandler godoc
// @Summary      Update user details
// @Description  Applies a partial update to the authenticated user. Only
// @Description  fields present in the payload are changed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Param        userUpdateRequest  body  UserUpdateRequest  true  "Fields to update"
// @Success      200 {object} UserUpdateResponse "User updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid field values"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      409 {object} echo.HTTPError     "Duplicate username or email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /users/ [patch]
func UpdateUserHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid user update request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			logger.Error("Email validation failed:", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Enter a valid email address.",
			}
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		if *req.Username == "" {
			logger.Error("Username must not be empty.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "username must not be empty",
			}
		}
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Password != nil {
		if err := passwordcheck.ValidatePassword(*req.Password); err != nil {
			logger.Error("Password validation failed:", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			}
		}
		newCrypto := crypto.NewCrypto()
		hash, err := newCrypto.HashPassword(*req.Password)
		if err != nil {
			logger.Errorf("Failed to hash password: %v", err)
			return echo.ErrInternalServerError
		}
		user.Password = hash
	}

	if err := db.Conn.Save(user).Error; err != nil {
		// Unique constraint violation on username or email.
		logger.Errorf("Failed to update user: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Username or email already exists.",
		}
	}

	logger.Info("User updated successfully.")
	return c.JSON(http.StatusOK, UserUpdateResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
