// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"strings"
	"testing"
	"todoapp-server/db"
	"todoapp-server/models"
)

func TestSignupLoginLogoutFlow(t *testing.T) {
	e := newTestServer(t)

	body := `{"username": "alice", "email": "alice@example.com", "password": "password123"}`
	rec := doRequest(e, http.MethodPost, "/users/", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Signup status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var signup SignupResponse
	decodeBody(t, rec, &signup)
	if signup.Username != "alice" || signup.Email != "alice@example.com" || signup.ID == 0 {
		t.Errorf("Unexpected signup response: %+v", signup)
	}

	rec = doRequest(e, http.MethodPost, "/users/login", "", `{"username": "alice", "password": "password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var login LoginResponse
	decodeBody(t, rec, &login)
	if login.ID != signup.ID || login.Username != "alice" {
		t.Errorf("Unexpected login response: %+v", login)
	}
	if !strings.Contains(login.Token, ".") {
		t.Errorf("Token %q is not in prefix.secret form", login.Token)
	}

	user := models.User{}
	if err := db.Conn.First(&user).Error; err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if user.LastLogin == nil {
		t.Error("Login should record last_login")
	}

	rec = doRequest(e, http.MethodPost, "/users/logout", login.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Logout status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var logout GenericResponse
	decodeBody(t, rec, &logout)
	if logout.Message != "successful" {
		t.Errorf("Logout message = %q", logout.Message)
	}

	// The revoked token no longer authenticates anything.
	rec = doRequest(e, http.MethodPost, "/users/logout", login.Token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Logout with a revoked token status = %d, want 401", rec.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	e := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email": "a@example.com", "password": "password123"}`},
		{"missing email", `{"username": "alice", "password": "password123"}`},
		{"invalid email", `{"username": "alice", "email": "not-an-email", "password": "password123"}`},
		{"missing password", `{"username": "alice", "email": "a@example.com"}`},
		{"short password", `{"username": "alice", "email": "a@example.com", "password": "short"}`},
	}
	for _, tc := range cases {
		rec := doRequest(e, http.MethodPost, "/users/", "", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestSignupDuplicates(t *testing.T) {
	e := newTestServer(t)

	body := `{"username": "alice", "email": "alice@example.com", "password": "password123"}`
	if rec := doRequest(e, http.MethodPost, "/users/", "", body); rec.Code != http.StatusOK {
		t.Fatalf("Signup status = %d, want 200", rec.Code)
	}

	sameEmail := `{"username": "alice2", "email": "alice@example.com", "password": "password123"}`
	if rec := doRequest(e, http.MethodPost, "/users/", "", sameEmail); rec.Code != http.StatusConflict {
		t.Errorf("Duplicate email status = %d, want 409", rec.Code)
	}

	sameUsername := `{"username": "alice", "email": "other@example.com", "password": "password123"}`
	if rec := doRequest(e, http.MethodPost, "/users/", "", sameUsername); rec.Code != http.StatusConflict {
		t.Errorf("Duplicate username status = %d, want 409", rec.Code)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	e := newTestServer(t)
	signupAndLogin(t, e, "alice")

	wrongPassword := `{"username": "alice", "password": "not-the-password"}`
	recWrong := doRequest(e, http.MethodPost, "/users/login", "", wrongPassword)
	if recWrong.Code != http.StatusUnauthorized {
		t.Errorf("Wrong password status = %d, want 401", recWrong.Code)
	}

	unknownUser := `{"username": "nobody", "password": "password123"}`
	recUnknown := doRequest(e, http.MethodPost, "/users/login", "", unknownUser)
	if recUnknown.Code != http.StatusUnauthorized {
		t.Errorf("Unknown user status = %d, want 401", recUnknown.Code)
	}

	// An attacker probing usernames gets identical responses either way.
	if recWrong.Body.String() != recUnknown.Body.String() {
		t.Error("Bad-password and unknown-user responses should be indistinguishable")
	}
}

func TestAuthFailuresAreUniform(t *testing.T) {
	e := newTestServer(t)
	signupAndLogin(t, e, "alice")

	tokens := []string{"", "noseparator", ".", ".secret", "prefix.", "deadbeef.cafebabe"}
	var firstBody string
	for i, token := range tokens {
		rec := doRequest(e, http.MethodGet, "/todos/", token, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Token %q: status = %d, want 401", token, rec.Code)
		}
		if i == 0 {
			firstBody = rec.Body.String()
		} else if rec.Body.String() != firstBody {
			t.Errorf("Token %q: rejection body differs from the missing-header one", token)
		}
	}
}

func TestUpdateUserPartialFields(t *testing.T) {
	e := newTestServer(t)
	token := signupAndLogin(t, e, "alice")

	rec := doRequest(e, http.MethodPatch, "/users/", token, `{"first_name": "Alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var updated UserUpdateResponse
	decodeBody(t, rec, &updated)
	if updated.FirstName == nil || *updated.FirstName != "Alice" {
		t.Errorf("FirstName not applied: %+v", updated)
	}
	if updated.Username != "alice" || updated.Email != "alice@example.com" {
		t.Errorf("Absent fields should be untouched: %+v", updated)
	}

	rec = doRequest(e, http.MethodPatch, "/users/", token, `{"email": "bad-address"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Invalid email status = %d, want 400", rec.Code)
	}
}

func TestUpdateUserPasswordChange(t *testing.T) {
	e := newTestServer(t)
	token := signupAndLogin(t, e, "alice")

	rec := doRequest(e, http.MethodPatch, "/users/", token, `{"password": "newpassword456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Password update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	oldLogin := `{"username": "alice", "password": "password123"}`
	if rec := doRequest(e, http.MethodPost, "/users/login", "", oldLogin); rec.Code != http.StatusUnauthorized {
		t.Errorf("Old password status = %d, want 401", rec.Code)
	}

	newLogin := `{"username": "alice", "password": "newpassword456"}`
	if rec := doRequest(e, http.MethodPost, "/users/login", "", newLogin); rec.Code != http.StatusOK {
		t.Errorf("New password status = %d, want 200", rec.Code)
	}
}

func TestUpdateUserDuplicateUsername(t *testing.T) {
	e := newTestServer(t)
	signupAndLogin(t, e, "alice")
	token := signupAndLogin(t, e, "bob")

	rec := doRequest(e, http.MethodPatch, "/users/", token, `{"username": "alice"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("Duplicate username update status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}
