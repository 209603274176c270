package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// ParquetReader streams rows from a Parquet dataset with the same columns
// as the CSV source. Column values are read as their textual form and go
// through the same normalization as CSV cells.
type ParquetReader struct {
	path string
}

// NewParquetReader creates a ParquetReader for the given file.
func NewParquetReader(path string) *ParquetReader {
	return &ParquetReader{path: path}
}

// ReadRows reads all row groups sequentially and invokes cb per row.
func (r *ParquetReader) ReadRows(cb rowCallback) error {
	h, err := openParquet(r.path)
	if err != nil {
		return err
	}
	defer h.Close()

	cols := resolveParquetColumns(h.pf)
	if cols["name"] < 0 {
		return fmt.Errorf("source has no %q column", "name")
	}

	seq := 0
	buf := make([]parquet.Row, 1000)

	for _, rg := range h.pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)

		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				row := parquetRowToRow(buf[i], cols)
				if err := cb(&row, seq); err != nil {
					return err
				}
				seq++
			}

			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return fmt.Errorf("read rows: %w", readErr)
			}
		}
	}

	return nil
}

// resolveParquetColumns finds leaf-level indexes of the source columns by name.
func resolveParquetColumns(pf *parquet.File) map[string]int {
	cols := make(map[string]int, len(sourceColumns))
	for _, name := range sourceColumns {
		cols[name] = -1
	}
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		if _, ok := cols[path[0]]; ok {
			cols[path[0]] = i
		}
	}
	return cols
}

func parquetRowToRow(row parquet.Row, cols map[string]int) SourceRow {
	cells := make(map[int]string, len(cols))
	for _, v := range row {
		if v.IsNull() {
			continue
		}
		cells[v.Column()] = v.String()
	}
	cell := func(name string) string {
		i := cols[name]
		if i < 0 {
			return ""
		}
		return cells[i]
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

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
