// Package buildsheet collects the per-article summary consumed by the site
// search and family tree.
package buildsheet

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/segment"
	"github.com/samber/lo"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// FileName is where the CLI writes the sheet inside the output directory.
const FileName = "build_sheet.json"

// PageData summarises one compiled article.
type PageData struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Born     string   `json:"born"`
	Died     string   `json:"died"`
	ImageSrc string   `json:"imageSrc"`
	Keywords []string `json:"keywords"`
	Checksum string   `json:"checksum"`
}

// Sheet is keyed by "<filetype>/<id>".
type Sheet struct {
	Build    string              `json:"build"`
	PageData map[string]PageData `json:"pageData"`
}

// New returns an empty sheet for the named build.
func New(build string) *Sheet {
	return &Sheet{Build: build, PageData: map[string]PageData{}}
}

// Key builds the page data key of an article.
func Key(fileType, id string) string {
	return fileType + "/" + id
}

// Add records an article. A later call for the same key replaces the entry.
func (s *Sheet) Add(key string, meta interfaces.Metadata, checksum string) PageData {
	texts := append([]string{meta.Name, meta.Subtitle}, meta.Headings...)
	page := PageData{
		ID:       meta.ID.String(),
		Name:     meta.Name,
		Born:     meta.Born,
		Died:     meta.Died,
		ImageSrc: imageSrc(meta),
		Keywords: Keywords(texts...),
		Checksum: checksum,
	}
	s.PageData[key] = page
	return page
}

// Keys returns the page keys in sorted order.
func (s *Sheet) Keys() []string {
	keys := lo.Keys(s.PageData)
	slices.Sort(keys)
	return keys
}

// Marshal encodes the sheet as indented JSON.
func (s *Sheet) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("buildsheet: encode: %w", err)
	}
	return data, nil
}

func imageSrc(meta interfaces.Metadata) string {
	if len(meta.Images) > 0 {
		return meta.Images[0].Src
	}
	if meta.InfoBox != nil {
		return meta.InfoBox.Image
	}
	return ""
}

// Keywords splits texts into lower-cased words of at least two runes using
// Unicode word segmentation. Punctuation and spaces are dropped and each word
// is kept once, in first-seen order.
func Keywords(texts ...string) []string {
	words := []string{}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		seg := segment.NewWordSegmenter(strings.NewReader(text))
		for seg.Segment() {
			if seg.Type() == segment.None {
				continue
			}
			word := strings.ToLower(seg.Text())
			if utf8.RuneCountInString(word) < 2 {
				continue
			}
			words = append(words, word)
		}
	}
	return lo.Uniq(words)
}
