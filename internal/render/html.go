// Package render produces the HTML fragments of a compiled article.
package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Options tunes paragraph rendering.
type Options struct {
	// Extensions enables goldmark extensions by name. Linkify stays off so
	// link markers survive until citation resolution.
	Extensions []string
	HardWraps  bool
	// Safe drops raw HTML from paragraphs.
	Safe bool
	// MediaPrefix is prepended to image sources. Defaults to ../media/.
	MediaPrefix string
}

// HTML renders elements. It is safe for reuse across documents.
type HTML struct {
	md          goldmark.Markdown
	mediaPrefix string
}

var extensionRegistry = map[string]goldmark.Extender{
	"strikethrough": extension.Strikethrough,
	"table":         extension.Table,
	"typographer":   extension.Typographer,
	"definition":    extension.DefinitionList,
}

// New builds a renderer.
func New(opts Options) *HTML {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.Safe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParser(inlineParser()),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	extensions := []goldmark.Extender{extension.Strikethrough}
	if len(opts.Extensions) > 0 {
		extensions = extensions[:0]
		for _, name := range opts.Extensions {
			if ext, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]; ok {
				extensions = append(extensions, ext)
			}
		}
	}
	if len(extensions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(extensions...))
	}

	prefix := opts.MediaPrefix
	if prefix == "" {
		prefix = "../media/"
	}
	return &HTML{md: goldmark.New(engineOptions...), mediaPrefix: prefix}
}

// inlineParser reads a paragraph body and nothing else. Lists, headings and
// code blocks are not part of the article grammar, and bracketed text must
// reach citation resolution untouched, so the link parsers stay out.
func inlineParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewRawHTMLParser(), 400),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)
}

// Paragraph renders inline formatting of text. The result is wrapped in <p>.
func (h *HTML) Paragraph(text string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render: paragraph: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Heading renders an hN with a slug anchor.
func (h *HTML) Heading(level int, text string) string {
	level = min(max(level, 1), 6)
	return fmt.Sprintf(`<h%d id="%s" class="title">%s</h%d>`, level, Anchor(text), text, level)
}

// foldAccents maps accented letters to ASCII using the slug character map.
var foldAccents = sync.OnceValue(func() *strings.Replacer {
	mapping, err := slug.GetCharMap()
	if err != nil {
		return strings.NewReplacer()
	}
	pairs := make([]string, 0, len(mapping)*2)
	for _, from := range slices.Sorted(maps.Keys(mapping)) {
		pairs = append(pairs, from, mapping[from])
	}
	return strings.NewReplacer(pairs...)
})

// Anchor turns heading text into a fragment id. Accented letters are folded
// to ASCII first. Text the slugger rejects is used as is with spaces replaced.
func Anchor(text string) string {
	folded := foldAccents().Replace(norm.NFC.String(strings.ToLower(text)))
	if normalized, err := slug.Normalize(folded); err == nil && normalized != "" {
		return normalized
	}
	return strings.ReplaceAll(strings.TrimSpace(text), " ", "-")
}

// Image renders a floating picture box. Float accepts left or right.
func (h *HTML) Image(image interfaces.Image) string {
	float := ""
	if image.Float == "left" || image.Float == "right" {
		float = image.Float + "-box"
	}
	class := "small-box box"
	if float != "" {
		class += " " + float
	}
	return fmt.Sprintf(`<div class="%s"><img src="%s%s"/>%s</div>`, class, h.mediaPrefix, image.Src, caption(image.Caption))
}

// Gallery renders a scrolling strip of images.
func (h *HTML) Gallery(gallery interfaces.Gallery) string {
	var images strings.Builder
	for _, image := range gallery.Images {
		fmt.Fprintf(&images, `<img class="gallery-image" src="%s%s"/>`, h.mediaPrefix, image.Src)
	}
	return `<div class="gallery">` +
		`<button onclick="shiftGallery(-1);" class="gallery-arrow-container"><img style="width: 40px;" src="../res/arrow_left.svg"/></button>` +
		`<div>` + images.String() + `</div>` +
		`<button onclick="shiftGallery(1);" class="gallery-arrow-container"><img style="width: 40px;" src="../res/arrow_right.svg"/></button>` +
		`</div>`
}

// InfoBox renders the side panel. Entries without values are skipped.
func (h *HTML) InfoBox(box interfaces.InfoBox) string {
	var out strings.Builder
	out.WriteString(`<div class="box infobox">`)
	if box.Image != "" {
		fmt.Fprintf(&out, `<img src="%s%s"/>`, h.mediaPrefix, box.Image)
	}
	out.WriteString(caption(box.ImageCaption))
	out.WriteString(`<div class="grid">`)
	for _, entry := range box.Entries {
		if len(entry.Values) == 0 {
			continue
		}
		fmt.Fprintf(&out, "<h5>%s</h5><div>", entry.Label)
		for _, value := range entry.Values {
			fmt.Fprintf(&out, "<p>%s</p>", value)
		}
		out.WriteString("</div>\n")
	}
	out.WriteString(`</div></div>`)
	return out.String()
}

// Citation renders the footnote marker for number.
func (h *HTML) Citation(number int) string {
	return fmt.Sprintf(`<sup><a href="#ref-%d">[%d]</a></sup>`, number, number)
}

// Link renders an anchor to another article page.
func (h *HTML) Link(placeholder, target string) string {
	return fmt.Sprintf(`<a href="%s.html">%s</a>`, target, placeholder)
}

func caption(text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf(`<p class="caption">%s</p>`, text)
}
