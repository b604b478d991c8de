package catalog

import (
	"fmt"
	"os"

	"github.com/litescript/ls-rigel/internal/logging"
	"github.com/litescript/ls-rigel/internal/sky"
)

// LoadFiles builds a catalogue from a HYG CSV file and an optional asterism
// file. With no HYG path the built-in catalogue is used and asterismPath is
// ignored.
func LoadFiles(hygPath, asterismPath string, log *logging.Logger) (*sky.Catalogue, error) {
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("catalog")

	if hygPath == "" {
		log.Debug("no star file configured, using built-in catalogue")
		if asterismPath != "" {
			log.Warn("ignoring asterism file %s without a star file", asterismPath)
		}
		return Builtin()
	}

	b := sky.NewCatalogueBuilder()
	if err := loadFile(b, hygPath, HygLoader{}); err != nil {
		return nil, err
	}
	log.Info("loaded %d stars from %s", len(b.Stars()), hygPath)

	if asterismPath != "" {
		if err := loadFile(b, asterismPath, AsterismLoader{}); err != nil {
			return nil, err
		}
		log.Info("loaded %d asterisms from %s", len(b.Asterisms()), asterismPath)
	}

	return b.Build()
}

func loadFile(b *sky.CatalogueBuilder, path string, loader sky.Loader) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	if err := b.LoadFrom(f, loader); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
