package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// rowCallback is invoked for each source row. seq is the row's 0-based
// ordinal, which becomes the document identifier. A non-nil error halts
// the read.
type rowCallback func(row *SourceRow, seq int) error

// RowReader streams rows from a tabular source dataset.
type RowReader interface {
	ReadRows(cb rowCallback) error
}

// sourceColumns are the dataset columns, in no particular order; readers
// resolve them by name.
var sourceColumns = []string{
	"name", "main_category", "sub_category", "image", "link",
	"ratings", "no_of_ratings", "discount_price", "actual_price",
}

// OpenSource picks a reader by file extension (.csv or .parquet).
func OpenSource(path string) (RowReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVReader(path), nil
	case ".parquet":
		return NewParquetReader(path), nil
	default:
		return nil, fmt.Errorf("unsupported source format %q (want .csv or .parquet)", filepath.Ext(path))
	}
}
