package excel

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// DefaultDelimiter separates fields in the survey export.
const DefaultDelimiter = ';'

const utf8BOM = "\uFEFF"

// DataReader handles reading xlsx workbooks and delimited text files
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "delimited"
	delimiter rune
	logger    zerolog.Logger
}

// NewDataReader creates a reader choosing the format from the file extension:
// .xlsx and .xlsm are read as workbooks, anything else as ';'-delimited text.
func NewDataReader(filePath string, logger zerolog.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "delimited"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{
		filePath:  filePath,
		fileType:  fileType,
		delimiter: DefaultDelimiter,
		logger:    logger.With().Str("component", "data_reader").Logger(),
	}
}

// WithDelimiter overrides the field separator of delimited files.
func (r *DataReader) WithDelimiter(d rune) *DataReader {
	r.delimiter = d
	return r
}

// ReadData reads the file into a raw table
func (r *DataReader) ReadData() (*RawTable, error) {
	r.logger.Debug().Str("type", r.fileType).Str("path", r.filePath).Msg("reading file")

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, fmt.Errorf("file not accessible: %w", err)
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcelData()
	default:
		return r.readDelimitedData()
	}
}

// readExcelData reads the first worksheet
func (r *DataReader) readExcelData() (*RawTable, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	r.logger.Debug().
		Str("sheet", sheets[0]).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("worksheet read")

	return r.processRows(rows)
}

// readDelimitedData reads ';'-separated UTF-8 text with an optional BOM
func (r *DataReader) readDelimitedData() (*RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	rows, err := parseDelimited(file, r.delimiter)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("delimited file read")

	return r.processRows(rows)
}

func parseDelimited(src io.Reader, delimiter rune) ([][]string, error) {
	br := bufio.NewReader(src)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into a RawTable. Short rows leave the
// trailing columns empty; cells beyond the header are ignored.
func (r *DataReader) processRows(rows [][]string) (*RawTable, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info().
		Str("path", r.filePath).
		Int("columns", len(headers)).
		Int("rows", len(dataRows)).
		Msg("file processed")

	return &RawTable{Headers: headers, Rows: dataRows}, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
