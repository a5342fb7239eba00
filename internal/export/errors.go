package export

import "fmt"

// ErrorKind classifies where a table export failed
type ErrorKind string

const (
	// QueryFailed means the database rejected or aborted the read query
	QueryFailed ErrorKind = "query_failed"
	// WriteFailed means the output file could not be written
	WriteFailed ErrorKind = "write_failed"
)

// ExportError reports that one table's export did not complete. The
// batch runner logs it and moves on to the next table.
type ExportError struct {
	Kind  ErrorKind
	Table string
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export of table %s failed (%s): %v", e.Table, e.Kind, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func newExportError(kind ErrorKind, table string, err error) *ExportError {
	return &ExportError{Kind: kind, Table: table, Err: err}
}

// DirectoryResolutionError means no viable output location could be
// prepared. It only occurs at startup and is fatal to the process.
type DirectoryResolutionError struct {
	Path string
	Err  error
}

func (e *DirectoryResolutionError) Error() string {
	return fmt.Sprintf("failed to create output directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryResolutionError) Unwrap() error {
	return e.Err
}
