package media

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf guesses the encoding from a path or URL extension. Anything that is not yaml is json.
func FormatOf(name string) Format {
	lower := strings.ToLower(name)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return YAML
	}
	return JSON
}

// File is the on-disk catalog layout.
type File struct {
	Categories []Category `json:"categories" yaml:"categories" jsonschema:"required"`
}

// Category groups videos under a display name.
type Category struct {
	Name   string   `json:"name" yaml:"name"`
	Videos []Record `json:"videos" yaml:"videos" jsonschema:"required"`
}

// Record is one video entry as written in a catalog file.
type Record struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty" jsonschema:"description=Stable identifier; derived from the position when omitted"`
	Title       string   `json:"title" yaml:"title" jsonschema:"required"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Sources     []string `json:"sources" yaml:"sources" jsonschema:"required,minItems=1,description=Locators opened by the media surface; the first one is used"`
	Thumb       string   `json:"thumb,omitempty" yaml:"thumb,omitempty"`
}

// Parse decodes catalog data. Both the categorised layout and a bare list of records are accepted.
// Categories are concatenated in file order.
func Parse(data []byte, format Format) (Catalog, error) {
	unmarshal := json.Unmarshal
	if format == YAML {
		unmarshal = yaml.Unmarshal
	}

	var records []Record

	var file File
	fileErr := unmarshal(data, &file)
	switch {
	case fileErr == nil && len(file.Categories) > 0:
		for _, c := range file.Categories {
			records = append(records, c.Videos...)
		}
	case unmarshal(data, &records) == nil:
	case fileErr == nil:
		// categorised layout without any category
	default:
		return Catalog{}, fmt.Errorf("decode %s catalog: %w", format, fileErr)
	}

	items := make([]Item, 0, len(records))
	for i, r := range records {
		item, err := r.toItem(i)
		if err != nil {
			return Catalog{}, err
		}
		items = append(items, item)
	}

	return NewCatalog(items), nil
}

func (r Record) toItem(position int) (Item, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return Item{}, fmt.Errorf("catalog entry %d: missing title", position+1)
	}

	source, ok := lo.Find(r.Sources, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
	if !ok {
		return Item{}, fmt.Errorf("catalog entry %d (%s): missing source", position+1, title)
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = fmt.Sprintf("item-%d", position+1)
	}

	return Item{
		ID:          id,
		Title:       title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Source:      strings.TrimSpace(source),
		Thumb:       r.Thumb,
	}, nil
}
