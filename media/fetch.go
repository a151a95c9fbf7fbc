package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/castdeck/castdeck/constant"
	"github.com/castdeck/castdeck/filesystem"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/network"
	"github.com/castdeck/castdeck/util"
	"github.com/castdeck/castdeck/where"
	"github.com/metafates/gache"
	"github.com/spf13/viper"
)

const maxCatalogSize = 8 << 20

// ErrCatalogTooLarge is returned by Fetch when the body exceeds the size limit.
var ErrCatalogTooLarge = errors.New("catalog too large")

// HTTPClient is used for remote catalogs. Tests may swap it out.
var HTTPClient = network.Client

type cachedCatalog struct {
	URL    string `json:"url"`
	Format Format `json:"format"`
	Data   []byte `json:"data"`
}

func cacherFor(url string) *gache.Cache[cachedCatalog] {
	sum := sha256.Sum256([]byte(url))
	return gache.New[cachedCatalog](&gache.Options{
		Path:       filepath.Join(where.Catalogs(), hex.EncodeToString(sum[:])+".json"),
		Lifetime:   time.Duration(viper.GetInt(key.CatalogCacheLifetimeHours)) * time.Hour,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Fetch downloads a catalog over HTTP(S). Successful downloads are cached on disk
// for catalog.cache_lifetime_hours and served from the cache until they expire.
func Fetch(ctx context.Context, url string) (Catalog, error) {
	cacher := cacherFor(url)

	if cached, expired, err := cacher.Get(); err == nil && !expired && cached.URL == url {
		log.Debugf("catalog %s served from cache", url)
		return Parse(cached.Data, cached.Format)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Catalog{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", constant.App+"/"+constant.Version)

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return Catalog{}, fmt.Errorf("fetch catalog: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return Catalog{}, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize+1))
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog body: %w", err)
	}
	if len(data) > maxCatalogSize {
		return Catalog{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrCatalogTooLarge, url, maxCatalogSize)
	}

	format := FormatOf(url)
	catalog, err := Parse(data, format)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", url, err)
	}

	if err := cacher.Set(cachedCatalog{URL: url, Format: format, Data: data}); err != nil {
		log.Warnf("cache catalog %s: %v", url, err)
	}

	return catalog, nil
}
