package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Queryer is the slice of the database client the export step needs.
// *mysql.Client and *sqlx.DB both satisfy it.
type Queryer interface {
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

// Exporter writes one CSV file per table into a fixed output directory
type Exporter struct {
	outputDir string
	logger    *slog.Logger
}

// NewExporter creates an exporter targeting outputDir, which must
// already exist (see ResolveOutputDir)
func NewExporter(outputDir string, logger *slog.Logger) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		logger:    logger,
	}
}

// ExportTable runs a full-table read for spec and rewrites
// <outputDir>/<table>.csv with a header row followed by one line per
// row, columns in spec order. The file is replaced atomically: a
// failure at any point leaves the previous run's file untouched.
// Returns the number of data rows written.
func (e *Exporter) ExportTable(ctx context.Context, q Queryer, spec TableSpec) (int, string, error) {
	query := buildSelect(spec)

	e.logger.Debug("Running export query",
		slog.String("table", spec.Name),
		slog.String("query", query),
	)

	rows, err := q.QueryxContext(ctx, query)
	if err != nil {
		return 0, "", newExportError(QueryFailed, spec.Name, err)
	}
	defer rows.Close()

	path := filepath.Join(e.outputDir, spec.Name+".csv")

	tmp, err := os.CreateTemp(e.outputDir, spec.Name+".csv.tmp")
	if err != nil {
		return 0, "", newExportError(WriteFailed, spec.Name, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	// CreateTemp makes the file 0600; the export must stay readable
	// like a regular os.Create output
	if err := tmp.Chmod(0o644); err != nil {
		return 0, "", newExportError(WriteFailed, spec.Name, err)
	}

	w := csv.NewWriter(tmp)

	if err := w.Write(spec.Columns); err != nil {
		return 0, "", newExportError(WriteFailed, spec.Name, err)
	}

	count := 0
	record := make([]string, len(spec.Columns))
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return 0, "", newExportError(QueryFailed, spec.Name, err)
		}

		for i, v := range values {
			record[i] = formatValue(v)
		}

		if err := w.Write(record); err != nil {
			return 0, "", newExportError(WriteFailed, spec.Name, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, "", newExportError(QueryFailed, spec.Name, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, "", newExportError(WriteFailed, spec.Name, err)
	}

	if err := tmp.Close(); err != nil {
		return 0, "", newExportError(WriteFailed, spec.Name, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, "", newExportError(WriteFailed, spec.Name, err)
	}

	return count, path, nil
}

// buildSelect renders the full-scan read query. Identifiers are
// backtick-quoted for MySQL.
func buildSelect(spec TableSpec) string {
	cols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i] = quoteIdent(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(spec.Name))
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// formatValue renders one scanned cell as CSV field text. The MySQL
// driver hands back most values as []byte; parseTime=true makes
// temporal columns arrive as time.Time.
func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}
