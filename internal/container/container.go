// Package container wires the commission-calc dependencies from configuration.
package container

import (
	"fmt"

	"fjacquet/commission-calc/internal/batch"
	"fjacquet/commission-calc/internal/catalog"
	"fjacquet/commission-calc/internal/config"
	"fjacquet/commission-calc/internal/export"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/server"
)

// Container holds the application dependencies. It is immutable after
// creation; use the getters.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	store   *catalog.Store
	catalog *catalog.Catalog
	writer  *export.Writer
}

// NewContainer builds the logger from cfg and wires everything else.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger wires dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	store := catalog.NewStore(cfg.Catalog.File, logger)
	cat, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	writer := export.NewWriter(cfg.Delimiter(), logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldCatalogFile, store.File),
		logging.F("catalog_entries", cat.Len()),
		logging.F(logging.FieldFormat, cfg.Export.Format))

	return &Container{
		logger:  logger,
		config:  cfg,
		store:   store,
		catalog: cat,
		writer:  writer,
	}, nil
}

func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

func (c *Container) GetConfig() *config.Config {
	return c.config
}

func (c *Container) GetStore() *catalog.Store {
	return c.store
}

func (c *Container) GetCatalog() *catalog.Catalog {
	return c.catalog
}

func (c *Container) GetWriter() *export.Writer {
	return c.writer
}

// NewProcessor returns a batch processor resolving through the catalog,
// sized by batch.workers.
func (c *Container) NewProcessor(validate bool) *batch.Processor {
	return batch.NewProcessor(c.logger,
		batch.WithWorkers(c.config.Batch.Workers),
		batch.WithResolver(c.catalog),
		batch.WithValidation(validate))
}

// NewServer returns the HTTP host configured by the server section.
func (c *Container) NewServer() *server.Server {
	return server.New(c.config.Server, c.catalog, c.NewProcessor(true), c.config.Export.Currency, c.logger)
}
