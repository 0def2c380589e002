package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
)

// maxCatalogBytes caps how much of a catalog document is read.
const maxCatalogBytes = 4 << 20

// document is the on-disk catalog format.
type document struct {
	Offers []model.Offer `json:"offers"`
}

// fileLoader implements Loader for catalog files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a catalog file. Paths ending in ".gz" are gunzipped first.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Catalog, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalog file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filePath, err)
	}
	defer file.Close()

	cat, err := decode(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode catalog file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("offers_loaded", cat.Size()).
		Msg("catalog file loaded successfully")

	return cat, nil
}

// decode parses a catalog document from r; name decides whether it is gzipped.
func decode(r io.Reader, name string) (Catalog, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var doc document
	if err := json.NewDecoder(io.LimitReader(r, maxCatalogBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}

	if len(doc.Offers) == 0 {
		return nil, fmt.Errorf("catalog %s contains no offers", name)
	}

	cat, err := NewOfferSet(doc.Offers)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", name, err)
	}
	return cat, nil
}
