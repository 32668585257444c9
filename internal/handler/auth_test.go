package handler

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/workadmin/workadmin-go/internal/middleware"
	"github.com/workadmin/workadmin-go/internal/service"
)

func newAuthHandler(env *testEnv) *AuthHandler {
	authLogs := service.NewAuthLogService(env.db, nil)
	return NewAuthHandler(env.db, env.renderer, env.sm, nil, authLogs)
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "admin@example.com", "correct horse battery")
	h := newAuthHandler(env)

	form := url.Values{"email": {"admin@example.com"}, "password": {"correct horse battery"}}
	r := env.newRequest(t, "POST", "/login", form.Encode())
	w := httptest.NewRecorder()

	h.Login(w, r)

	assertRedirect(t, w, redirectDashboard)
	if got := env.sm.GetString(r.Context(), middleware.SessionKeyAdminID); got != admin.ID {
		t.Fatalf("session admin id = %q, want %q", got, admin.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "admin@example.com", "correct horse battery")
	h := newAuthHandler(env)

	form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}
	r := env.newRequest(t, "POST", "/login", form.Encode())
	w := httptest.NewRecorder()

	h.Login(w, r)

	assertRedirect(t, w, redirectLogin)
	if got := env.sm.GetString(r.Context(), middleware.SessionKeyAdminID); got != "" {
		t.Fatalf("session admin id = %q, want empty", got)
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	form := url.Values{"email": {"nobody@example.com"}, "password": {"whatever"}}
	r := env.newRequest(t, "POST", "/login", form.Encode())
	w := httptest.NewRecorder()

	h.Login(w, r)

	// Same vague redirect as a wrong password
	assertRedirect(t, w, redirectLogin)
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	r := env.newRequest(t, "POST", "/login", url.Values{"email": {"a@b.c"}}.Encode())
	w := httptest.NewRecorder()

	h.Login(w, r)

	assertRedirect(t, w, redirectLogin)
}

func TestLogin_RecordsAttempts(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "admin@example.com", "correct horse battery")
	h := newAuthHandler(env)

	form := url.Values{"email": {"admin@example.com"}, "password": {"bad"}}
	r := env.newRequest(t, "POST", "/login", form.Encode())
	h.Login(httptest.NewRecorder(), r)

	form.Set("password", "correct horse battery")
	r = env.newRequest(t, "POST", "/login", form.Encode())
	h.Login(httptest.NewRecorder(), r)

	logs, err := env.queries.ListLoginLogs(r.Context(), 10)
	if err != nil {
		t.Fatalf("ListLoginLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d login logs, want 2", len(logs))
	}

	var successes int
	for _, l := range logs {
		if l.Success {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("got %d successful logins, want 1", successes)
	}
}

func TestLoginForm_RedirectsWhenSignedIn(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	r := env.newRequest(t, "GET", "/login", "")
	env.sm.Put(r.Context(), middleware.SessionKeyAdminID, "admin-1")
	w := httptest.NewRecorder()

	h.LoginForm(w, r)

	assertRedirect(t, w, redirectDashboard)
}

func TestLoginForm_Renders(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	r := env.newRequest(t, "GET", "/login", "")
	w := httptest.NewRecorder()

	h.LoginForm(w, r)

	assertStatus(t, w.Code, 200)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	r := env.newRequest(t, "POST", "/logout", "")
	env.sm.Put(r.Context(), middleware.SessionKeyAdminID, "admin-1")
	w := httptest.NewRecorder()

	h.Logout(w, r)

	assertRedirect(t, w, redirectLogin)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"30s", "30 seconds"},
		{"1m", "1 minute"},
		{"15m", "15 minutes"},
		{"1h", "1 hour"},
		{"24h", "24 hours"},
	}
	for _, tt := range tests {
		d, err := time.ParseDuration(tt.in)
		if err != nil {
			t.Fatalf("parsing %q: %v", tt.in, err)
		}
		if got := formatDuration(d); got != tt.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
