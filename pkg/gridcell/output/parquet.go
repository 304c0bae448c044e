package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/models"
)

// CellRecord is the flat row layout written to parquet files.
type CellRecord struct {
	Sheet string `parquet:"sheet,dict"`
	Cell  string `parquet:"cell"`
	Row   int64  `parquet:"row"`
	Col   int64  `parquet:"col"`
	Raw   string `parquet:"raw"`
	Value string `parquet:"value"`
	Error string `parquet:"error"`
}

// Records flattens a workbook into parquet rows, sheets in name order.
func Records(wb *models.WorkbookData) []CellRecord {
	names := make([]string, 0, len(wb.Sheets))
	for name := range wb.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	var records []CellRecord
	for _, name := range names {
		for _, c := range wb.Sheets[name].Cells {
			records = append(records, CellRecord{
				Sheet: name,
				Cell:  c.Cell,
				Row:   int64(c.Row),
				Col:   int64(c.Col),
				Raw:   c.Raw,
				Value: c.Value,
				Error: c.Error,
			})
		}
	}
	return records
}

// WriteParquet writes the workbook's cells to w as a zstd-compressed
// parquet file.
func WriteParquet(w io.Writer, wb *models.WorkbookData) error {
	writer := parquet.NewGenericWriter[CellRecord](w,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBestCompression}),
	)

	if _, err := writer.Write(Records(wb)); err != nil {
		return fmt.Errorf("error writing parquet rows: %w", err)
	}

	// Close flushes buffers and writes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error closing parquet writer: %w", err)
	}
	return nil
}
