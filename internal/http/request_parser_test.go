package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"reviewdesk/internal/core"
)

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"id": "123", "name": "test", "amount": 42.5}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	parser := NewRequestBodyParser(req)
	err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !parser.IsJSON() {
		t.Error("Expected IsJSON() to be true")
	}

	if id := parser.Get("id"); id != "123" {
		t.Errorf("Get('id') = %q, want '123'", id)
	}

	if name := parser.Get("name"); name != "test" {
		t.Errorf("Get('name') = %q, want 'test'", name)
	}

	if amount := parser.Get("amount"); amount != "42.5" {
		t.Errorf("Get('amount') = %q, want '42.5'", amount)
	}
}

func TestRequestBodyParser_FormData(t *testing.T) {
	body := "id=456&name=form+test&value=100"
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parser := NewRequestBodyParser(req)
	err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if parser.IsJSON() {
		t.Error("Expected IsJSON() to be false for form data")
	}

	if id := parser.Get("id"); id != "456" {
		t.Errorf("Get('id') = %q, want '456'", id)
	}

	if name := parser.Get("name"); name != "form test" {
		t.Errorf("Get('name') = %q, want 'form test'", name)
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(""))

	parser := NewRequestBodyParser(req)
	err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if val := parser.Get("nonexistent"); val != "" {
		t.Errorf("Get('nonexistent') = %q, want empty string", val)
	}
}

func TestRequireMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		allowed []string
		wantErr bool
	}{
		{"POST allowed", http.MethodPost, []string{http.MethodPost}, false},
		{"HEAD allowed with multiple", http.MethodHead, []string{http.MethodGet, http.MethodHead}, false},
		{"GET not allowed", http.MethodGet, []string{http.MethodPost}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			result := RequireMethod(req, tt.allowed...)

			if tt.wantErr && result == nil {
				t.Error("Expected error response but got nil")
			}
			if !tt.wantErr && result != nil {
				t.Error("Expected nil but got error response")
			}
		})
	}
}

func TestRequirePOST(t *testing.T) {
	postReq := httptest.NewRequest(http.MethodPost, "/test", nil)
	if result := RequirePOST(postReq); result != nil {
		t.Error("RequirePOST should allow POST requests")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/test", nil)
	if result := RequirePOST(getReq); result == nil {
		t.Error("RequirePOST should reject GET requests")
	}
}

func TestRequireGET(t *testing.T) {
	tests := []struct {
		method  string
		wantErr bool
	}{
		{http.MethodGet, false},
		{http.MethodHead, false},
		{http.MethodPost, true},
		{http.MethodDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			result := RequireGET(req)

			if tt.wantErr && result == nil {
				t.Error("Expected error response but got nil")
			}
			if !tt.wantErr && result != nil {
				t.Error("Expected nil but got error response")
			}
		})
	}
}

func TestParseReviewForm(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        ReviewForm
		wantErr     error
	}{
		{
			name:        "form with comment",
			contentType: "application/x-www-form-urlencoded",
			body:        "id=4&comment=+Missing+receipt+&tab=rejected",
			want:        ReviewForm{ID: "4", Comment: "Missing receipt", Tab: core.StatusRejected},
		},
		{
			name:        "json body",
			contentType: "application/json",
			body:        `{"id": "2"}`,
			want:        ReviewForm{ID: "2", Tab: core.StatusPending},
		},
		{
			name:        "unknown tab falls back",
			contentType: "application/x-www-form-urlencoded",
			body:        "id=1&tab=archived",
			want:        ReviewForm{ID: "1", Tab: core.StatusPending},
		},
		{
			name:        "missing id",
			contentType: "application/x-www-form-urlencoded",
			body:        "comment=x",
			wantErr:     ErrMissingID,
		},
		{
			name:        "blank id",
			contentType: "application/x-www-form-urlencoded",
			body:        "id=+++",
			wantErr:     ErrMissingID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/expenses/reject", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			got, err := ParseReviewForm(req)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseReviewForm_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses/approve", strings.NewReader(`{"id":`))
	if _, err := ParseReviewForm(req); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseReviewForm_BodyTooLarge(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{"at limit", maxBodyBytes, nil},
		{"over limit", maxBodyBytes + 1, ErrBodyTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := "id=3&comment="
			body := prefix + strings.Repeat("a", tt.size-len(prefix))
			req := httptest.NewRequest(http.MethodPost, "/expenses/reject", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			f, err := ParseReviewForm(req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && len(f.Comment) != tt.size-len(prefix) {
				t.Fatalf("comment length = %d, want %d", len(f.Comment), tt.size-len(prefix))
			}
		})
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		query string
		want  core.Status
	}{
		{"", core.StatusPending},
		{"tab=approved", core.StatusApproved},
		{"tab=REJECTED", core.StatusRejected},
		{"tab=other", core.StatusPending},
	}
	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		if got := ParseTab(q); got != tt.want {
			t.Errorf("ParseTab(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  hello  ", "hello"},
		{"a\x00b", "ab"},
		{"line1\nline2", "line1\nline2"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(core.NewDate(2025, 1, 15)); got != "Jan 15, 2025" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate(core.Date{}); got != "" {
		t.Errorf("zero date = %q, want empty", got)
	}
}
