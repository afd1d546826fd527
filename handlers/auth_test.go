package handlers

import (
	"testing"

	"ecotrack/database"
	"ecotrack/models"
)

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Ada Lovelace",
		"email":    "Ada@Example.COM",
		"password": "secret123",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("register status = %d, want 201 (%v)", resp.StatusCode, body)
	}
	if body["token"] == "" || body["token"] == nil {
		t.Error("register should return a token")
	}

	user := body["user"].(map[string]interface{})
	if user["email"] != "ada@example.com" {
		t.Errorf("email not normalized: %v", user["email"])
	}

	// Login with the normalized address
	resp, body = doRequest(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("login status = %d, want 200 (%v)", resp.StatusCode, body)
	}
	if body["token"] == "" || body["token"] == nil {
		t.Error("login should return a token")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "user@example.com")

	resp, _ := doRequest(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != 401 {
		t.Errorf("wrong password status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	if resp.StatusCode != 401 {
		t.Errorf("unknown user status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"short name", map[string]interface{}{"name": "A", "email": "a@example.com", "password": "secret123"}},
		{"missing name", map[string]interface{}{"email": "a@example.com", "password": "secret123"}},
		{"bad email", map[string]interface{}{"name": "Ada", "email": "not-an-email", "password": "secret123"}},
		{"double dot email", map[string]interface{}{"name": "Ada", "email": "a..b@example.com", "password": "secret123"}},
		{"short password", map[string]interface{}{"name": "Ada", "email": "a@example.com", "password": "12345"}},
	}

	for _, tt := range tests {
		resp, _ := doRequest(t, app, "POST", "/api/auth/register", "", tt.body)
		if resp.StatusCode != 400 {
			t.Errorf("%s: status = %d, want 400", tt.name, resp.StatusCode)
		}
	}

	var count int64
	database.GetDB().Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid registrations created %d users", count)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "taken@example.com")

	resp, body := doRequest(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Second User",
		"email":    "taken@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != 400 {
		t.Errorf("duplicate email status = %d, want 400 (%v)", resp.StatusCode, body)
	}
}

func TestUpdateProfile(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "user@example.com")

	resp, _ := doRequest(t, app, "PUT", "/api/auth/profile", token, map[string]interface{}{
		"name": "  Renamed User  ",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("profile update status = %d, want 200", resp.StatusCode)
	}

	var fresh models.User
	database.GetDB().First(&fresh, user.ID)
	if fresh.Name != "Renamed User" {
		t.Errorf("name = %q, want %q", fresh.Name, "Renamed User")
	}

	resp, _ = doRequest(t, app, "PUT", "/api/auth/profile", token, map[string]interface{}{
		"name": "x",
	})
	if resp.StatusCode != 400 {
		t.Errorf("short name status = %d, want 400", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	app := setupTestApp(t)

	paths := []struct{ method, path string }{
		{"POST", "/api/activity/log"},
		{"GET", "/api/activity/user"},
		{"GET", "/api/achievements/"},
		{"POST", "/api/achievements/check"},
		{"GET", "/api/users/me"},
	}

	for _, p := range paths {
		resp, _ := doRequest(t, app, p.method, p.path, "", nil)
		if resp.StatusCode != 401 {
			t.Errorf("%s %s without token: status = %d, want 401", p.method, p.path, resp.StatusCode)
		}
	}

	resp, _ := doRequest(t, app, "GET", "/api/users/me", "not-a-valid-token", nil)
	if resp.StatusCode != 401 {
		t.Errorf("garbage token status = %d, want 401", resp.StatusCode)
	}
}
