package excel

// ExcelConfig holds configuration for reading source spreadsheets
type ExcelConfig struct {
	SheetName        string `json:"sheet_name"`          // empty reads the first sheet
	UnzipSizeLimitMB int64  `json:"unzip_size_limit_mb"` // guards against oversized uploads
	CSVComma         rune   `json:"csv_comma"`
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		UnzipSizeLimitMB: 256,
		CSVComma:         ',',
	}
}
