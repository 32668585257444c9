package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/workadmin/workadmin-go/internal/notify"
)

func TestNotifications_ListAndDismiss(t *testing.T) {
	env := newTestEnv(t)
	h := NewNotificationHandler(env.hub)

	r := env.newRequest(t, "GET", "/admin/notifications", "")
	env.hub.Center(r).ShowFor(notify.KindLoading, "Working...", 0)

	w := httptest.NewRecorder()
	h.List(w, r)

	assertStatus(t, w.Code, 200)

	var body struct {
		Toasts []notify.Toast `json:"toasts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Toasts) != 1 {
		t.Fatalf("got %d toasts, want 1", len(body.Toasts))
	}
	if body.Toasts[0].Message != "Working..." {
		t.Errorf("message = %q", body.Toasts[0].Message)
	}

	// Dismiss and confirm the list drains
	dr := env.newRequest(t, "POST", "/admin/notifications/1/dismiss", "")
	dr = withURLParam(dr, "id", "1")
	dw := httptest.NewRecorder()
	h.Dismiss(dw, dr)
	assertStatus(t, dw.Code, 204)

	if got := len(env.hub.Center(r).Active()); got != 0 {
		t.Fatalf("got %d active toasts after dismiss, want 0", got)
	}
}

func TestNotifications_DismissInvalidID(t *testing.T) {
	env := newTestEnv(t)
	h := NewNotificationHandler(env.hub)

	r := env.newRequest(t, "POST", "/admin/notifications/abc/dismiss", "")
	r = withURLParam(r, "id", "abc")
	w := httptest.NewRecorder()

	h.Dismiss(w, r)

	assertStatus(t, w.Code, 400)
}

func TestNotificationHub_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)

	r1 := env.newRequest(t, "GET", "/", "")
	r2 := env.newRequest(t, "GET", "/", "")

	// Commit both sessions so each carries its own token
	if _, _, err := env.sm.Commit(r1.Context()); err != nil {
		t.Fatalf("committing session: %v", err)
	}
	if _, _, err := env.sm.Commit(r2.Context()); err != nil {
		t.Fatalf("committing session: %v", err)
	}

	env.hub.Center(r1).Show(notify.KindSuccess, "only for session one")

	if got := len(env.hub.Center(r2).Active()); got != 0 {
		t.Fatalf("second session sees %d toasts, want 0", got)
	}
	if got := len(env.hub.Center(r1).Active()); got != 1 {
		t.Fatalf("first session sees %d toasts, want 1", got)
	}
}
