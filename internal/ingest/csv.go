package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVReader streams rows from a CSV dataset with a header row.
type CSVReader struct {
	path string
}

// NewCSVReader creates a CSVReader for the given file.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadRows reads the file sequentially and invokes cb per row.
func (r *CSVReader) ReadRows(cb rowCallback) error {
	f, err := os.Open(filepath.Clean(r.path))
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // ragged rows normalize to empty cells

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return err
	}

	seq := 0
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read row %d: %w", seq, err)
		}

		row := recordToRow(record, cols)
		if err := cb(&row, seq); err != nil {
			return err
		}
		seq++
	}
}

// columnIndex maps each source column name to its position in the header,
// or -1 if absent.
type columnIndex map[string]int

func resolveColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(sourceColumns))
	for _, name := range sourceColumns {
		cols[name] = -1
	}
	for i, h := range header {
		if _, ok := cols[h]; ok {
			cols[h] = i
		}
	}
	if cols["name"] < 0 {
		return nil, fmt.Errorf("source has no %q column", "name")
	}
	return cols, nil
}

func recordToRow(record []string, cols columnIndex) SourceRow {
	cell := func(name string) string {
		i := cols[name]
		if i < 0 || i >= len(record) {
			return ""
		}
		return record[i]
	}
	return SourceRow{
		Name:          cell("name"),
		MainCategory:  cell("main_category"),
		SubCategory:   cell("sub_category"),
		Image:         cell("image"),
		Link:          cell("link"),
		Ratings:       cell("ratings"),
		NoOfRatings:   cell("no_of_ratings"),
		DiscountPrice: cell("discount_price"),
		ActualPrice:   cell("actual_price"),
	}
}
