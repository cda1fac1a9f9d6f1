// Package markup turns article source text into an ordered element sequence
// and the document metadata carried by its info object.
package markup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

var ErrMalformedMarkup = errors.New("markup: malformed markup")

// SyntaxError locates a malformed span. It unwraps to ErrMalformedMarkup.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markup: line %d: %s", e.Line, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedMarkup
}

// InfoValidator inspects and may rewrite an info tag before it is stored on
// the metadata. fields holds the decoded object. A returned error stops the
// parse.
type InfoValidator func(info *interfaces.InfoTag, fields map[string]any) error

// Parsed is the result of one parse.
type Parsed struct {
	Elements []interfaces.Element
	Metadata interfaces.Metadata
}

// Option configures Parse.
type Option func(*parser)

// WithInfoValidator installs the validator run on every info object.
func WithInfoValidator(validate InfoValidator) Option {
	return func(p *parser) {
		p.validateInfo = validate
	}
}

type stateKind uint8

const (
	stateStartOfLine stateKind = iota
	stateHeading
	statePlainText
	stateSoftBreak
	stateObject
)

type state struct {
	kind  stateKind
	level int
	depth int
	// indented is set once a soft-broken line has skipped leading blanks
	indented bool
	// string scanning inside objects
	quoted  bool
	escaped bool
}

type parser struct {
	state        state
	buf          strings.Builder
	line         int
	objectLine   int
	out          *Parsed
	validateInfo InfoValidator
}

// Parse runs the markup state machine over raw.
func Parse(raw string, opts ...Option) (*Parsed, error) {
	p := &parser{
		line: 1,
		out:  &Parsed{Elements: []interfaces.Element{}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, r := range raw {
		if err := p.step(r); err != nil {
			return nil, err
		}
		if r == '\n' {
			p.line++
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.out, nil
}

func (p *parser) step(r rune) error {
	switch p.state.kind {
	case stateStartOfLine:
		switch r {
		case '\n':
		case '#':
			p.state = state{kind: stateHeading, level: 1}
		case '{':
			p.openObject()
		default:
			p.state = state{kind: statePlainText}
			p.buf.WriteRune(r)
		}

	case stateHeading:
		switch {
		case r == '\n':
			p.flushHeading()
			p.state = state{kind: stateStartOfLine}
		case p.buf.Len() == 0 && r == '#':
			p.state.level++
		case p.buf.Len() == 0 && (r == ' ' || r == '\t'):
		default:
			p.buf.WriteRune(r)
		}

	case statePlainText:
		switch r {
		case '\n':
			p.state = state{kind: stateSoftBreak}
		case '{':
			p.flushParagraph()
			p.openObject()
		default:
			p.buf.WriteRune(r)
		}

	case stateSoftBreak:
		switch r {
		case '\n':
			p.flushParagraph()
			p.state = state{kind: stateStartOfLine}
		case ' ', '\t':
			p.state.indented = true
		case '#':
			if p.state.indented {
				p.continueParagraph(r)
				break
			}
			p.flushParagraph()
			p.state = state{kind: stateHeading, level: 1}
		case '{':
			p.flushParagraph()
			p.openObject()
		default:
			p.continueParagraph(r)
		}

	case stateObject:
		p.buf.WriteRune(r)
		if p.state.quoted {
			switch {
			case p.state.escaped:
				p.state.escaped = false
			case r == '\\':
				p.state.escaped = true
			case r == '"':
				p.state.quoted = false
			}
			return nil
		}
		switch r {
		case '"':
			p.state.quoted = true
		case '{':
			p.state.depth++
		case '}':
			p.state.depth--
			if p.state.depth == 0 {
				return p.closeObject()
			}
		}
	}
	return nil
}

// continueParagraph joins the next line onto the pending paragraph.
func (p *parser) continueParagraph(r rune) {
	if p.buf.Len() > 0 {
		p.buf.WriteByte('\n')
	}
	p.buf.WriteRune(r)
	p.state = state{kind: statePlainText}
}

func (p *parser) finish() error {
	switch p.state.kind {
	case stateHeading:
		p.flushHeading()
	case statePlainText, stateSoftBreak:
		p.flushParagraph()
	case stateObject:
		return &SyntaxError{
			Line:    p.objectLine,
			Message: fmt.Sprintf("input ended inside an object (depth %d)", p.state.depth),
		}
	}
	return nil
}

func (p *parser) openObject() {
	p.buf.Reset()
	p.buf.WriteByte('{')
	p.objectLine = p.line
	p.state = state{kind: stateObject, depth: 1}
}

func (p *parser) flushHeading() {
	text := strings.TrimSpace(p.buf.String())
	p.buf.Reset()
	if text == "" {
		return
	}
	level := p.state.level
	p.out.Elements = append(p.out.Elements, interfaces.Heading{Level: level, Text: text})
	if level == 1 {
		p.out.Metadata.Headings = append(p.out.Metadata.Headings, text)
	}
}

func (p *parser) flushParagraph() {
	text := strings.TrimSpace(p.buf.String())
	p.buf.Reset()
	if text == "" {
		return
	}
	p.out.Elements = append(p.out.Elements, interfaces.Paragraph{Text: text})
}

func (p *parser) closeObject() error {
	raw := p.buf.String()
	p.buf.Reset()
	p.state = state{kind: statePlainText}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return &SyntaxError{Line: p.objectLine, Message: fmt.Sprintf("cannot decode object: %v", err)}
	}
	objectType, ok := fields["type"].(string)
	if !ok {
		return &SyntaxError{Line: p.objectLine, Message: "object has no string \"type\" attribute"}
	}

	if objectType == interfaces.ObjectInfo {
		return p.storeInfo(decodeInfo(fields), fields)
	}

	payload, err := decodePayload(objectType, raw, fields)
	if err != nil {
		return &SyntaxError{Line: p.objectLine, Message: err.Error()}
	}
	p.out.Elements = append(p.out.Elements, interfaces.EmbeddedObject{
		Type:    objectType,
		Raw:     raw,
		Line:    p.objectLine,
		Fields:  fields,
		Payload: payload,
	})
	return nil
}

// storeInfo replaces any earlier info tag.
func (p *parser) storeInfo(info *interfaces.InfoTag, fields map[string]any) error {
	if p.validateInfo != nil {
		if err := p.validateInfo(info, fields); err != nil {
			return err
		}
	}
	meta := &p.out.Metadata
	meta.Info = info
	meta.Name = info.Name
	meta.ArticleType = info.ArticleType
	meta.Subtitle = info.Subtitle
	meta.Born = info.Born
	meta.Died = info.Died
	meta.Images = info.Images
	return nil
}
