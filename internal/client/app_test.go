package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-service/internal/adapter"
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers the account endpoints with canned responses and records
// the last profile update it received.
type fakeAPI struct {
	token      string
	lastUpdate models.ProfileUpdate
	updates    int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := models.User{ID: "01HXUSER", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		_, _ = io.WriteString(w, "Server is working")
	case r.Method == http.MethodPost && r.URL.Path == "/register":
		writeJSON(w, http.StatusCreated, models.AccountResponse{Success: true, Message: "User registered successfully", User: user})
	case r.Method == http.MethodPost && r.URL.Path == "/login":
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, models.AccountResponse{Message: "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: f.token, Path: "/"})
		writeJSON(w, http.StatusOK, models.AccountResponse{Success: true, Message: "User logged in successfully", User: user})
	case r.URL.Path == "/profile":
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != f.token {
			writeJSON(w, http.StatusUnauthorized, models.AccountResponse{Message: "Invalid or expired token."})
			return
		}
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, user)
			return
		}
		f.updates++
		f.lastUpdate = models.ProfileUpdate{}
		_ = json.NewDecoder(r.Body).Decode(&f.lastUpdate)
		if f.lastUpdate.Email != nil {
			user.Email = *f.lastUpdate.Email
			f.token = "rotated-token"
			http.SetCookie(w, &http.Cookie{Name: "token", Value: f.token, Path: "/"})
		}
		writeJSON(w, http.StatusOK, models.AccountResponse{Success: true, Message: "Profile updated", User: user})
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type testApp struct {
	app     *App
	api     *fakeAPI
	session *adapter.SessionFile
	out     *bytes.Buffer
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	api := &fakeAPI{token: "first-token"}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	log := logger.NewClientLogger("test", io.Discard)
	serverAdapter, err := adapter.NewHTTPServerAdapter(config.ClientConfig{
		HTTPAddress:    srv.URL,
		RequestTimeout: 5 * time.Second,
	}, log)
	require.NoError(t, err)

	session := adapter.NewSessionFile(filepath.Join(t.TempDir(), "session"))
	out := &bytes.Buffer{}

	return testApp{
		app:     NewApp(serverAdapter, session, models.NewAppBuildInfo("v1.2.3", "", ""), out, log),
		api:     api,
		session: session,
		out:     out,
	}
}

// ── Command dispatch ─────────────────────────────────────────────────────────

func TestRun_NoCommand(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoCommand)
	assert.Contains(t, ta.out.String(), "usage: client")
}

func TestRun_UnknownCommand(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{"delete-everything"})

	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, ta.out.String(), "delete-everything")
}

func TestRun_Version(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.app.Run(context.Background(), []string{"version"}))
	assert.Contains(t, ta.out.String(), "v1.2.3")
	assert.Contains(t, ta.out.String(), "N/A")
}

func TestRun_Health(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.app.Run(context.Background(), []string{"health"}))
	assert.Contains(t, ta.out.String(), "Server is working")
}

func TestRun_BadFlag(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{"login", "-nope"})

	require.Error(t, err)
}

// ── Account commands ─────────────────────────────────────────────────────────

func TestRun_Register(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{
		"register", "-first", "Ada", "-last", "Lovelace", "-email", "ada@example.com", "-password", "secret",
	})

	require.NoError(t, err)
	assert.Contains(t, ta.out.String(), "User registered successfully")

	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "register does not start a session")
}

func TestRun_LoginStoresSession(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{"login", "-email", "ada@example.com", "-password", "secret"})

	require.NoError(t, err)
	assert.Contains(t, ta.out.String(), "User logged in successfully")

	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)
}

func TestRun_LoginWrongPassword(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{"login", "-email", "ada@example.com", "-password", "nope"})

	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Contains(t, ta.out.String(), "error:")

	token, loadErr := ta.session.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, token)
}

func TestRun_ProfileWithoutSession(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{"profile"})

	require.ErrorIs(t, err, adapter.ErrNoSession)
}

func TestRun_ProfileAfterLogin(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.session.Save("first-token"))

	require.NoError(t, ta.app.Run(context.Background(), []string{"profile"}))
	assert.Contains(t, ta.out.String(), "ada@example.com")
	assert.Contains(t, ta.out.String(), "Lovelace")
}

func TestRun_UpdateSendsOnlyGivenFlags(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.session.Save("first-token"))

	require.NoError(t, ta.app.Run(context.Background(), []string{"update", "-first", "Augusta"}))

	require.NotNil(t, ta.api.lastUpdate.FirstName)
	assert.Equal(t, "Augusta", *ta.api.lastUpdate.FirstName)
	assert.Nil(t, ta.api.lastUpdate.LastName)
	assert.Nil(t, ta.api.lastUpdate.Email)
	assert.Nil(t, ta.api.lastUpdate.Password)

	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)
}

func TestRun_UpdateEmailStoresRotatedSession(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.session.Save("first-token"))

	require.NoError(t, ta.app.Run(context.Background(), []string{"update", "-email", "ada@lovelace.dev"}))
	assert.Contains(t, ta.out.String(), "Profile updated")

	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Equal(t, "rotated-token", token)
}

func TestRun_UpdateWithoutFlags(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.session.Save("first-token"))

	err := ta.app.Run(context.Background(), []string{"update"})

	require.ErrorIs(t, err, ErrNothingToApply)
	assert.Zero(t, ta.api.updates)
}

func TestRun_Logout(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.session.Save("first-token"))

	require.NoError(t, ta.app.Run(context.Background(), []string{"logout"}))

	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Contains(t, ta.out.String(), "Logged out")
}
