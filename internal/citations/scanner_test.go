package citations

import (
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Token
	}{
		{
			name: "citation and link",
			in:   "See [a1] and [[Jane|jane_doe]].",
			want: []Token{
				{Kind: TokenText, Value: "See "},
				{Kind: TokenCitation, Value: "a1"},
				{Kind: TokenText, Value: " and "},
				{Kind: TokenLink, Value: "Jane|jane_doe"},
				{Kind: TokenText, Value: "."},
			},
		},
		{
			name: "empty brackets are text",
			in:   "a [] b",
			want: []Token{{Kind: TokenText, Value: "a [] b"}},
		},
		{
			name: "newline aborts citation",
			in:   "a [b\nc] d",
			want: []Token{{Kind: TokenText, Value: "a [b\nc] d"}},
		},
		{
			name: "open bracket restarts citation",
			in:   "[x [y]",
			want: []Token{
				{Kind: TokenText, Value: "[x "},
				{Kind: TokenCitation, Value: "y"},
			},
		},
		{
			name: "lone bracket inside link",
			in:   "[[a]b|c]]",
			want: []Token{{Kind: TokenLink, Value: "a]b|c"}},
		},
		{
			name: "unterminated citation",
			in:   "end [key",
			want: []Token{{Kind: TokenText, Value: "end [key"}},
		},
		{
			name: "unterminated link",
			in:   "end [[a|b]",
			want: []Token{{Kind: TokenText, Value: "end [[a|b]"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Scan(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Scan(%q)\nwant: %#v\ngot:  %#v", tc.in, tc.want, got)
			}
		})
	}
}

func TestTokenLinkParts(t *testing.T) {
	token := Token{Kind: TokenLink, Value: "Jane Doe | jane_doe"}
	if token.Placeholder() != "Jane Doe" || token.Target() != "jane_doe" {
		t.Fatalf("unexpected parts %q %q", token.Placeholder(), token.Target())
	}
	bare := Token{Kind: TokenLink, Value: "oban"}
	if bare.Placeholder() != "oban" || bare.Target() != "oban" {
		t.Fatalf("target should default to placeholder, got %q %q", bare.Placeholder(), bare.Target())
	}
}
