// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "time"

// swagger:model SignupRequest
type SignupRequest struct {
	// Desired unique username
	// required: true
	Username string `json:"username" example:"johndoe"`
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model SignupResponse
type SignupResponse struct {
	// Identifier of the created user
	ID uint `json:"id" example:"1"`
	// Username of the created user
	Username string `json:"username" example:"johndoe"`
	// Email address of the created user
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's username
	Username string `json:"username" example:"johndoe"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	// Identifier of the authenticated user
	ID uint `json:"id" example:"1"`
	// API key for subsequent requests, in "prefix.secret" form.
	// Delivered exactly once; it cannot be retrieved again.
	// Send it in the X-API-Key header.
	Token string `json:"token" example:"a1b2c3d4.deadbeef"`
	// Username of the authenticated user
	Username string `json:"username" example:"johndoe"`
	// Email address of the authenticated user
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the outcome of the operation
	Message string `json:"message" example:"successful"`
}

// UserUpdateRequest is a partial update: only fields present in the payload
// are applied, so every field is a pointer and nil means "leave unchanged".
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	// New email address
	Email *string `json:"email" example:"new@example.com"`
	// New username
	Username *string `json:"username" example:"johndoe2"`
	// New password
	Password *string `json:"password" example:"MyNewPassword@123"`
	// New first name
	FirstName *string `json:"first_name" example:"John"`
	// New last name
	LastName *string `json:"last_name" example:"Doe"`
}

// swagger:model UserUpdateResponse
type UserUpdateResponse struct {
	// Current username
	Username string `json:"username" example:"johndoe2"`
	// Current email address
	Email string `json:"email" example:"new@example.com"`
	// Current first name
	FirstName *string `json:"first_name" example:"John"`
	// Current last name
	LastName *string `json:"last_name" example:"Doe"`
}

// swagger:model CreateTodoRequest
type CreateTodoRequest struct {
	// Todo text, at most 100 characters
	// required: true
	Input string `json:"input" example:"Buy groceries #errands"`
	// Whether the todo starts out done
	Done bool `json:"done" example:"false"`
	// Priority, defaults to 1
	Priority int `json:"priority" example:"1"`
	// Hashtag names to attach
	Hashtags []string `json:"hashtags" example:"errands"`
}

// UpdateTodoRequest is a partial update; nil fields are left unchanged. A
// present but empty hashtag list clears the todo's hashtags, which is a
// different thing from the field being absent.
// swagger:model UpdateTodoRequest
type UpdateTodoRequest struct {
	// New todo text
	Input *string `json:"input" example:"Buy groceries and milk"`
	// New done flag
	Done *bool `json:"done" example:"true"`
	// New priority
	Priority *int `json:"priority" example:"2"`
	// Replacement hashtag set
	Hashtags *[]string `json:"hashtags"`
}

// swagger:model TodoResponse
type TodoResponse struct {
	// Identifier of the todo
	ID string `json:"id" example:"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"`
	// Todo text
	Input string `json:"input" example:"Buy groceries #errands"`
	// Whether the todo is done
	Done bool `json:"done" example:"false"`
	// Priority of the todo
	Priority int `json:"priority" example:"1"`
	// Hashtag names attached to the todo
	Hashtags []string `json:"hashtags"`
	// Timestamp of when the todo was created
	CreatedAt time.Time `json:"created_at"`
	// Timestamp of when the todo was marked done
	FinishedAt *time.Time `json:"finished_at"`
}
