package container

import (
	"fmt"

	"burnoutlens/adapters/chart"
	"burnoutlens/adapters/excel"
	"burnoutlens/domain/filters"
	"burnoutlens/internal/comparison"
	"burnoutlens/internal/config"
	apperrors "burnoutlens/internal/errors"
	"burnoutlens/internal/logging"
	"burnoutlens/internal/report"
	"burnoutlens/internal/session"

	"github.com/rs/zerolog"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger zerolog.Logger

	// Builder is nil when the dataset could not be loaded; LoadErr says why.
	Builder *report.Builder
	LoadErr error

	Sessions *session.Manager
	Charts   *chart.Renderer
}

// New loads the dataset named by cfg and wires every component. A load or schema
// failure is recorded in LoadErr instead of being returned, so callers can keep
// serving guidance.
func New(cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Sessions: session.NewManager(cfg.SessionTTL()),
		Charts:   chart.NewRenderer(cfg.Chart.Width, cfg.Chart.Height),
	}
	log := logging.Component(logger, "container")

	comparator := comparison.NewComparator(cfg.Comparison.Alpha, cfg.ComparisonMethod())

	ds, err := excel.LoadDataset(cfg.Data.File, cfg.DelimiterRune(), logger)
	if err != nil {
		c.LoadErr = err
		log.Error().Err(err).Str("path", cfg.Data.File).Str("code", apperrors.GetCode(err)).Msg("dataset unavailable")
		return c, nil
	}

	builder, err := report.NewBuilder(ds, filters.DefaultCatalog(), comparator, logger)
	if err != nil {
		c.LoadErr = err
		log.Error().Err(err).Msg("dashboard could not be prepared")
		return c, nil
	}
	if ferr := builder.FilterError(); ferr != nil {
		log.Warn().Err(ferr).Msg("serving the unfiltered dashboard only")
	}
	c.Builder = builder

	log.Info().
		Str("path", cfg.Data.File).
		Int("rows", ds.Len()).
		Float64("alpha", comparator.Alpha).
		Str("method", string(comparator.Method)).
		Msg("dataset loaded")
	return c, nil
}

// Ready reports whether a dataset is available
func (c *Container) Ready() bool {
	return c.Builder != nil
}
