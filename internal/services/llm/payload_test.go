package llm

import (
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "bare", in: `{"label":"true"}`, want: `{"label":"true"}`, ok: true},
		{name: "prose around", in: "判定結果: {\"label\":\"false\"} です", want: `{"label":"false"}`, ok: true},
		{name: "code fence", in: "```json\n{\"label\":1}\n```", want: `{"label":1}`, ok: true},
		{name: "nested", in: `x {"a":{"b":1},"c":2} y {"d":3}`, want: `{"a":{"b":1},"c":2}`, ok: true},
		{name: "brace in string", in: `{"label":"}"} tail`, want: `{"label":"}"}`, ok: true},
		{name: "escaped quote", in: `{"label":"a\"}"}`, want: `{"label":"a\"}"}`, ok: true},
		{name: "unclosed then closed", in: `{ oops {"label":"true"}`, want: `{"label":"true"}`, ok: true},
		{name: "prose only", in: "This title is a comedy sketch.", ok: false},
		{name: "unclosed", in: `{"label":"true"`, ok: false},
		{name: "empty", in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ExtractJSONObject(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("  \n "); got != "<empty>" {
		t.Fatalf("unexpected empty snippet %q", got)
	}
	if got := Snippet("a\nb\tc"); got != "a b c" {
		t.Fatalf("unexpected snippet %q", got)
	}
	long := strings.Repeat("あ", 200)
	got := Snippet(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != 163 {
		t.Fatalf("expected truncated snippet, got %d runes", len([]rune(got)))
	}
}
