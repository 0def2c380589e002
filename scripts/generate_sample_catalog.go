package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mini-checkout/internal/catalog"
	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
)

// generateSampleCatalog writes sample offer catalogs for local runs:
// data/catalog/offers.json and a gzipped copy, offers.json.gz.
// Set PRODUCT_ID_1/PRODUCT_ID_2 to real test-mode price ids before using
// them against the provider.
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create directory")
	}

	offers := []model.Offer{
		{ID: envOr("PRODUCT_ID_1", "price_sample_1"), ProductName: "Product 1", UnitAmount: 1000, Currency: "usd"},
		{ID: envOr("PRODUCT_ID_2", "price_sample_2"), ProductName: "Product 2", UnitAmount: 2000, Currency: "usd"},
		{ID: envOr("PRODUCT_ID_3", "price_sample_3"), ProductName: "Gift Wrap", UnitAmount: 350, Currency: "usd"},
	}

	// Reject anything the service would refuse to load
	if _, err := catalog.NewOfferSet(offers); err != nil {
		logger.Fatal().Err(err).Msg("invalid sample offers")
	}

	loader := catalog.NewFileLoader(zerolog.Nop())
	for _, name := range []string{"offers.json", "offers.json.gz"} {
		filePath := filepath.Join(dataDir, name)
		if err := writeCatalog(filePath, offers); err != nil {
			logger.Fatal().Err(err).Str("file", filePath).Msg("failed to create catalog")
		}

		cat, err := loader.Load(context.Background(), filePath)
		if err != nil {
			logger.Fatal().Err(err).Str("file", filePath).Msg("generated catalog does not load")
		}
		logger.Info().Str("file", filePath).Int("offers", cat.Size()).Msg("created catalog")
	}

	fmt.Println("\nSample catalog files created successfully!")
	fmt.Println("Run the service with CATALOG_FILE=" + filepath.Join(dataDir, "offers.json.gz"))
}

func writeCatalog(filePath string, offers []model.Offer) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var out io.Writer = file

	if filepath.Ext(filePath) == ".gz" {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		out = gzipWriter
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(map[string][]model.Offer{"offers": offers}); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
