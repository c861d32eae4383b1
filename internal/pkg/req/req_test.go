package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"footchat/internal/pkg/errs"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
	}{
		{
			name:        "valid body",
			contentType: "application/json",
			body:        `{"email":"a@b.com","password":"secret"}`,
		},
		{
			name:        "content type with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"email":"a@b.com","password":"secret"}`,
		},
		{
			name:        "missing content type",
			contentType: "",
			body:        `{"email":"a@b.com"}`,
			wantCode:    errs.ErrUnsupportedMediaType,
		},
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"email":"a@b.com"}`,
			wantCode:    errs.ErrUnsupportedMediaType,
		},
		{
			name:        "malformed JSON",
			contentType: "application/json",
			body:        `{"email":`,
			wantCode:    errs.ErrInvalidJSONFormat,
		},
		{
			name:        "unknown field",
			contentType: "application/json",
			body:        `{"email":"a@b.com","admin":true}`,
			wantCode:    errs.ErrInvalidJSONFormat,
		},
		{
			name:        "trailing content",
			contentType: "application/json",
			body:        `{"email":"a@b.com"}{"more":true}`,
			wantCode:    errs.ErrExtraContentInBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			var dst loginInput
			customErr := BindJSON(r, &dst)

			if tt.wantCode == 0 {
				if customErr != nil {
					t.Fatalf("BindJSON() error = %v", customErr)
				}
				if dst.Email != "a@b.com" {
					t.Errorf("Email = %q, want %q", dst.Email, "a@b.com")
				}
				return
			}

			if customErr == nil {
				t.Fatal("BindJSON() should fail")
			}
			if customErr.Code != tt.wantCode {
				t.Errorf("BindJSON() code = %d, want %d", customErr.Code, tt.wantCode)
			}
		})
	}
}

func TestIntQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/communities/1/messages?limit=25&offset=abc", nil)

	if got := IntQuery(r, "limit", 50); got != 25 {
		t.Errorf("IntQuery(limit) = %d, want 25", got)
	}
	if got := IntQuery(r, "offset", 0); got != 0 {
		t.Errorf("IntQuery(offset) = %d, want fallback 0", got)
	}
	if got := IntQuery(r, "missing", 7); got != 7 {
		t.Errorf("IntQuery(missing) = %d, want fallback 7", got)
	}
}

func TestInt64Param(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		got, customErr := Int64Param(tt.raw)

		if tt.wantErr {
			if customErr == nil {
				t.Errorf("Int64Param(%q) should fail", tt.raw)
			}
			continue
		}

		if customErr != nil {
			t.Errorf("Int64Param(%q) error = %v", tt.raw, customErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Int64Param(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
