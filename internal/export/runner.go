package export

import (
	"context"
	"errors"
	"log/slog"
)

// Runner executes the export step for every configured table in order
type Runner struct {
	exporter *Exporter
	tables   []TableSpec
	logger   *slog.Logger
}

// NewRunner creates a batch runner over the given table specs
func NewRunner(exporter *Exporter, tables []TableSpec, logger *slog.Logger) *Runner {
	return &Runner{
		exporter: exporter,
		tables:   tables,
		logger:   logger,
	}
}

// TableCount returns how many tables the runner is configured with
func (r *Runner) TableCount() int {
	return len(r.tables)
}

// ExportAll exports every configured table using the caller's open
// connection and returns the paths of the files written. A failing
// table is logged and skipped so the remaining tables still export;
// its previous output file, if any, stays on disk unchanged.
func (r *Runner) ExportAll(ctx context.Context, q Queryer) []string {
	exported := make([]string, 0, len(r.tables))

	for _, spec := range r.tables {
		count, path, err := r.exporter.ExportTable(ctx, q, spec)
		if err != nil {
			kind := "unknown"
			var exportErr *ExportError
			if errors.As(err, &exportErr) {
				kind = string(exportErr.Kind)
			}

			r.logger.Error("Table export failed",
				slog.String("table", spec.Name),
				slog.String("kind", kind),
				slog.Any("error", err),
			)
			continue
		}

		r.logger.Info("Table exported",
			slog.String("table", spec.Name),
			slog.Int("rows", count),
			slog.String("file", path),
		)
		exported = append(exported, path)
	}

	return exported
}
