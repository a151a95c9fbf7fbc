package media

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/castdeck/castdeck/filesystem"
	"github.com/samber/lo"
)

//go:embed default.json
var defaultCatalog []byte

// Default returns the embedded sample catalog.
func Default() Catalog {
	return lo.Must(Parse(defaultCatalog, JSON))
}

// Load reads a catalog file through the active filesystem backend.
func Load(path string) (Catalog, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	catalog, err := Parse(data, FormatOf(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// Open resolves a catalog reference: empty means the embedded catalog,
// http(s) URLs are fetched (and cached), anything else is a file path.
func Open(ctx context.Context, ref string) (Catalog, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return Default(), nil
	case isRemote(ref):
		return Fetch(ctx, ref)
	default:
		return Load(ref)
	}
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
