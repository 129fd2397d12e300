// Package ledgererror defines the typed errors returned by the ledger:
// validation failures on user input, malformed import documents, and
// filesystem problems while reading or writing records.
package ledgererror

import "fmt"

// ValidationError reports invalid user input for a named field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ImportFormatError reports an import document that does not match the
// expected export format. The file is rejected before anything is changed.
type ImportFormatError struct {
	FilePath string
	Reason   string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("invalid import file %s: %s", e.FilePath, e.Reason)
}

// StorageError wraps a filesystem or serialization failure on a record file.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
