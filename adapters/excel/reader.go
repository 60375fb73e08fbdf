package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stokreport/domain/core"
	"stokreport/domain/sheet"
	"stokreport/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader reads Excel and CSV files into tables
type DataReader struct {
	config ExcelConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	return &DataReader{config: config, logger: internal.DefaultLogger}
}

// WithLogger replaces the reader's logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

// ReadFile reads the spreadsheet at path
func (r *DataReader) ReadFile(ctx context.Context, path string) (*sheet.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return r.ReadTable(ctx, filepath.Base(path), file)
}

// ReadTable reads a spreadsheet from rd. Files ending in .csv are parsed as
// CSV, everything else as an xlsx workbook.
func (r *DataReader) ReadTable(ctx context.Context, filename string, rd io.Reader) (*sheet.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return r.readCSVData(filename, rd)
	}
	return r.readExcelData(filename, rd)
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData(filename string, rd io.Reader) (*sheet.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(rd, excelize.Options{UnzipSizeLimit: r.config.UnzipSizeLimitMB << 20})
	if err != nil {
		return nil, core.NewUnreadableWorkbookError(filename, err)
	}
	defer f.Close()

	sheetName := r.config.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s", core.ErrEmptyWorkbook, filename)
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewUnreadableWorkbookError(filename, err)
	}
	r.logger.Debug("[DataReader] %s: sheet %q read in %.2fms (%d rows)",
		filename, sheetName, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	// Cells stored as text keep their text even when it looks numeric
	textCell := func(row, col int) bool {
		ref, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return false
		}
		ct, err := f.GetCellType(sheetName, ref)
		if err != nil {
			return false
		}
		return ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString
	}

	return r.processRows(filename, rows, textCell), nil
}

// readCSVData reads CSV data into a table
func (r *DataReader) readCSVData(filename string, rd io.Reader) (*sheet.Table, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1
	if r.config.CSVComma != 0 {
		reader.Comma = r.config.CSVComma
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewUnreadableWorkbookError(filename, err)
	}
	return r.processRows(filename, rows, nil), nil
}

// processRows turns raw rows into a table: the first row is the header and
// the rest are data. textCell, when set, reports cells stored as text.
func (r *DataReader) processRows(filename string, rows [][]string, textCell func(row, col int) bool) *sheet.Table {
	if len(rows) == 0 {
		r.logger.Warn("[DataReader] %s has no rows", filename)
		return sheet.NewTable(nil, nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]sheet.Value, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := make([]sheet.Value, len(rows[i]))
		for j, raw := range rows[i] {
			v := sheet.ParseCell(raw)
			if v.Kind == sheet.KindNumber && textCell != nil && textCell(i, j) {
				v = sheet.Text(raw)
			}
			row[j] = v
		}
		data = append(data, row)
	}

	table := sheet.NewTable(headers, data)
	r.logger.Debug("[DataReader] %s processed (%d columns, %d rows)", filename, table.ColumnCount(), table.RowCount())
	return table
}
