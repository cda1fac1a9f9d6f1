package citations

import "strings"

// TokenKind discriminates scanner output.
type TokenKind uint8

const (
	TokenText TokenKind = iota
	TokenCitation
	TokenLink
)

// Token is one span of scanned text. Value holds the literal text, the
// citation key or the raw link body depending on Kind.
type Token struct {
	Kind  TokenKind
	Value string
}

// Placeholder and Target split a link body on the first `|`. Without a `|`
// both are the whole body.
func (t Token) Placeholder() string {
	placeholder, _, _ := strings.Cut(t.Value, "|")
	return strings.TrimSpace(placeholder)
}

func (t Token) Target() string {
	placeholder, target, ok := strings.Cut(t.Value, "|")
	if !ok {
		return strings.TrimSpace(placeholder)
	}
	return strings.TrimSpace(target)
}

type scanState uint8

const (
	scanText scanState = iota
	scanCitation
	scanLink
	scanLinkEnd
)

// Scan splits text into literal, citation (`[key]`) and link
// (`[[placeholder|target]]`) tokens. Unterminated markers stay literal text.
func Scan(text string) []Token {
	s := &scanner{}
	for _, r := range text {
		s.step(r)
	}
	s.finish()
	return s.tokens
}

type scanner struct {
	state  scanState
	text   strings.Builder
	buf    strings.Builder
	tokens []Token
}

func (s *scanner) step(r rune) {
	switch s.state {
	case scanText:
		if r == '[' {
			s.state = scanCitation
			return
		}
		s.text.WriteRune(r)

	case scanCitation:
		switch r {
		case '[':
			if s.buf.Len() == 0 {
				s.state = scanLink
				return
			}
			// a new opening bracket restarts the citation
			s.text.WriteByte('[')
			s.text.WriteString(s.buf.String())
			s.buf.Reset()
		case ']':
			if s.buf.Len() == 0 {
				s.text.WriteString("[]")
				s.state = scanText
				return
			}
			s.emit(TokenCitation, s.buf.String())
			s.state = scanText
		case '\n':
			s.text.WriteByte('[')
			s.text.WriteString(s.buf.String())
			s.text.WriteByte('\n')
			s.buf.Reset()
			s.state = scanText
		default:
			s.buf.WriteRune(r)
		}

	case scanLink:
		if r == ']' {
			s.state = scanLinkEnd
			return
		}
		s.buf.WriteRune(r)

	case scanLinkEnd:
		if r == ']' {
			s.emit(TokenLink, s.buf.String())
			s.state = scanText
			return
		}
		s.buf.WriteByte(']')
		s.buf.WriteRune(r)
		s.state = scanLink
	}
}

func (s *scanner) emit(kind TokenKind, value string) {
	s.flushText()
	s.tokens = append(s.tokens, Token{Kind: kind, Value: value})
	s.buf.Reset()
}

func (s *scanner) flushText() {
	if s.text.Len() == 0 {
		return
	}
	s.tokens = append(s.tokens, Token{Kind: TokenText, Value: s.text.String()})
	s.text.Reset()
}

func (s *scanner) finish() {
	switch s.state {
	case scanCitation:
		s.text.WriteByte('[')
	case scanLink:
		s.text.WriteString("[[")
	case scanLinkEnd:
		s.text.WriteString("[[")
		s.buf.WriteByte(']')
	}
	s.text.WriteString(s.buf.String())
	s.buf.Reset()
	s.flushText()
}
