package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<nav>admin</nav>{{template "page" .}}{{end}}`),
		},
		"admin/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "page"}}<h1>{{.Title}}</h1>{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<form>{{.Title}}</form>{{end}}`),
		},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRender_AdminTemplate(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)

	if err := r.Render(rec, req, "admin/dashboard", TemplateData{Title: "Dashboard"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<nav>admin</nav>") {
		t.Errorf("admin layout missing: %q", body)
	}
	if !strings.Contains(body, "<h1>Dashboard</h1>") {
		t.Errorf("page content missing: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRender_AuthTemplate(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/login", nil)

	if err := r.Render(rec, req, "auth/login", TemplateData{Title: "Sign In"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if strings.Contains(body, "<nav>") {
		t.Errorf("auth pages should not get the admin layout: %q", body)
	}
	if !strings.Contains(body, "<form>Sign In</form>") {
		t.Errorf("login content missing: %q", body)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := r.Render(rec, req, "admin/missing", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
	if rec.Body.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{12000, "₹12,000"},
		{1234567, "₹12,34,567"},
	}
	for _, tt := range tests {
		if got := FormatINR(tt.amount); got != tt.want {
			t.Errorf("FormatINR(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	got := string(Markdown("**bold** text"))
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %q", got)
	}

	// Script tags are stripped by the sanitizer
	got = string(Markdown(`hello <script>alert(1)</script>`))
	if strings.Contains(got, "<script>") {
		t.Errorf("script tag survived sanitization: %q", got)
	}
}

func TestTruncateFunc(t *testing.T) {
	r := newTestRenderer(t)
	funcs := r.templateFuncs()

	truncate := funcs["truncate"].(func(string, int) string)
	if got := truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("hi", 5); got != "hi" {
		t.Errorf("truncate short = %q", got)
	}
}
