package markup

import (
	"encoding/json"

	"github.com/goliatone/go-talorgan/internal/validation"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Payload decoding is lenient: attributes of the wrong JSON kind read as
// empty. Shapes are enforced later by the compiler.

func decodePayload(objectType, raw string, fields map[string]any) (interfaces.Payload, error) {
	switch objectType {
	case interfaces.ObjectInfoBox:
		return decodeInfoBox(raw, fields)
	case interfaces.ObjectImage:
		image := decodeImage(fields)
		return &image, nil
	case interfaces.ObjectGallery:
		return &interfaces.Gallery{Images: decodeImages(fields["images"])}, nil
	case interfaces.ObjectRefListing:
		attributes, err := validation.Attributes([]byte(raw))
		if err != nil {
			return nil, err
		}
		return interfaces.NewReferenceListing(attributes), nil
	default:
		return &interfaces.RawObject{Type: objectType}, nil
	}
}

func decodeInfo(fields map[string]any) *interfaces.InfoTag {
	return &interfaces.InfoTag{
		Name:        stringField(fields, "name"),
		Born:        stringField(fields, "born"),
		Died:        stringField(fields, "died"),
		Subtitle:    stringField(fields, "subtitle"),
		ArticleType: stringField(fields, "article-type"),
		Images:      decodeImages(fields["images"]),
	}
}

// decodeInfoBox keeps entry order from the source text.
func decodeInfoBox(raw string, fields map[string]any) (*interfaces.InfoBox, error) {
	box := &interfaces.InfoBox{
		Image:        stringField(fields, "image"),
		ImageCaption: stringField(fields, "image-caption"),
		Entries:      []interfaces.InfoBoxEntry{},
	}
	top, err := validation.ObjectFields([]byte(raw))
	if err != nil {
		return nil, err
	}
	var entriesRaw json.RawMessage
	for _, field := range top {
		if field.Name == "entries" {
			entriesRaw = field.Raw
		}
	}
	if entriesRaw == nil {
		return box, nil
	}
	entries, err := validation.ObjectFields(entriesRaw)
	if err != nil {
		// entries of the wrong kind are reported by the shape check
		return box, nil
	}
	for _, entry := range entries {
		var value any
		if err := json.Unmarshal(entry.Raw, &value); err != nil {
			return nil, err
		}
		box.Entries = append(box.Entries, interfaces.InfoBoxEntry{
			Label:  entry.Name,
			Values: stringValues(value),
		})
	}
	return box, nil
}

func decodeImage(fields map[string]any) interfaces.Image {
	return interfaces.Image{
		Src:     stringField(fields, "src"),
		Caption: stringField(fields, "caption"),
		Float:   stringField(fields, "float"),
	}
}

func decodeImages(value any) []interfaces.Image {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	images := make([]interfaces.Image, 0, len(list))
	for _, item := range list {
		if fields, ok := item.(map[string]any); ok {
			images = append(images, decodeImage(fields))
		}
	}
	return images
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func stringValues(value any) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
