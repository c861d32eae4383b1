package message

import (
	"strings"
	"testing"

	"footchat/internal/pkg/errs"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     string
		wantCode int
	}{
		{name: "plain content", content: "hello", want: "hello"},
		{name: "trims surrounding whitespace", content: "  hello world \n", want: "hello world"},
		{name: "empty", content: "", wantCode: errs.ErrEmptyContent},
		{name: "whitespace only", content: " \t\n ", wantCode: errs.ErrEmptyContent},
		{name: "at max length", content: strings.Repeat("a", MaxContentBytes), want: strings.Repeat("a", MaxContentBytes)},
		{name: "over max length", content: strings.Repeat("a", MaxContentBytes+1), wantCode: errs.ErrMessageTooLong},
		{name: "padding does not count toward length", content: "  " + strings.Repeat("a", MaxContentBytes) + "  ", want: strings.Repeat("a", MaxContentBytes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, customErr := NormalizeContent(tt.content)

			if tt.wantCode != 0 {
				if customErr == nil {
					t.Fatalf("NormalizeContent(%q) should fail", tt.content)
				}
				if customErr.Code != tt.wantCode {
					t.Errorf("NormalizeContent(%q) code = %d, want %d", tt.content, customErr.Code, tt.wantCode)
				}
				return
			}

			if customErr != nil {
				t.Fatalf("NormalizeContent(%q) error = %v", tt.content, customErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeContent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{limit: -1, want: DefaultListLimit},
		{limit: 0, want: DefaultListLimit},
		{limit: 1, want: 1},
		{limit: DefaultListLimit, want: DefaultListLimit},
		{limit: MaxListLimit, want: MaxListLimit},
		{limit: MaxListLimit + 1, want: MaxListLimit},
		{limit: 10000, want: MaxListLimit},
	}

	for _, tt := range tests {
		if got := ClampLimit(tt.limit); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}
