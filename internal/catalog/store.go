package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/commission-calc/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the catalog file name looked up when none is configured.
const DefaultFile = "catalog.yaml"

// Store loads a catalog from a YAML file.
type Store struct {
	File   string
	logger logging.Logger
}

// NewStore creates a store for file. An empty file means DefaultFile.
func NewStore(file string, logger logging.Logger) *Store {
	if file == "" {
		file = DefaultFile
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{File: file, logger: logger}
}

// FindCatalogFile looks for filename as given, then under config/ and
// database/, then in ~/.config/commission-calc/.
func FindCatalogFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "commission-calc", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the catalog. A missing file gives an empty catalog and a warning.
func (s *Store) Load() (*Catalog, error) {
	path, err := FindCatalogFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Catalog file not found, using an empty catalog",
				logging.F(logging.FieldCatalogFile, s.File))
			return New(nil, nil), nil
		}
		return nil, fmt.Errorf("error resolving catalog file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing catalog file %s: %w", path, err)
	}

	s.logger.Debug("Loaded catalog",
		logging.F(logging.FieldCatalogFile, path),
		logging.F("services", len(file.Services)),
		logging.F("advisors", len(file.Advisors)))
	return New(file.Services, file.Advisors), nil
}

// Save writes c to the store's file, creating its directory.
func (s *Store) Save(c *Catalog) error {
	path := s.File
	if found, err := FindCatalogFile(s.File); err == nil {
		path = found
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(File{Services: c.Services(), Advisors: c.Advisors()})
	if err != nil {
		return fmt.Errorf("error marshaling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing catalog: %w", err)
	}

	s.logger.Debug("Saved catalog", logging.F(logging.FieldCatalogFile, path), logging.F(logging.FieldCount, c.Len()))
	return nil
}
