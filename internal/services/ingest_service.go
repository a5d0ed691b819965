package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pnovbridge/internal/domain"
	"pnovbridge/internal/domain/models"
	"pnovbridge/internal/utils"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var zipMagic = []byte("PK\x03\x04")

// IngestService turns an uploaded PNOV export into a models.Table.
type IngestService struct {
	RequestID string
}

// Parse reads a CSV or XLSX upload. XLSX is chosen by extension or by the
// ZIP signature, anything else is read as CSV.
func (s IngestService) Parse(filename string, r io.Reader) (models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Table{}, domain.ParseError{Msg: "cannot read upload", Err: err}
	}
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") || bytes.HasPrefix(data, zipMagic) {
		t, err := s.ParseXLSX(bytes.NewReader(data))
		if err == nil {
			utils.LogEvent(s.RequestID, "ingest", "parse_xlsx", fmt.Sprintf("rows=%d", len(t.Rows)))
		}
		return t, err
	}
	t, err := s.ParseCSV(bytes.NewReader(data))
	if err == nil {
		utils.LogEvent(s.RequestID, "ingest", "parse_csv", fmt.Sprintf("rows=%d", len(t.Rows)))
	}
	return t, err
}

// ParseCSV reads comma separated records. A UTF-8 byte order mark is
// dropped, and short rows are padded with blank cells.
func (s IngestService) ParseCSV(r io.Reader) (models.Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return models.Table{}, domain.ParseError{Msg: "file is empty"}
	}
	if err != nil {
		return models.Table{}, csvParseError(err)
	}

	var records []record
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Table{}, csvParseError(err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, cells: rec})
	}
	return buildTable(header, records)
}

// ParseXLSX reads the first worksheet of an Excel workbook.
func (s IngestService) ParseXLSX(r io.Reader) (models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.Table{}, domain.ParseError{Msg: "invalid xlsx file", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Table{}, domain.ParseError{Msg: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.Table{}, domain.ParseError{Msg: "cannot read sheet " + sheets[0], Err: err}
	}
	if len(rows) == 0 {
		return models.Table{}, domain.ParseError{Msg: "file is empty"}
	}
	records := make([]record, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		records = append(records, record{line: i + 2, cells: cells})
	}
	return buildTable(rows[0], records)
}

func csvParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return domain.ParseError{Line: pe.Line, Msg: pe.Err.Error(), Err: err}
	}
	return domain.ParseError{Err: err}
}

type record struct {
	line  int
	cells []string
}

// buildTable maps raw records onto the known columns; unknown columns are
// kept in the header but otherwise ignored.
func buildTable(header []string, records []record) (models.Table, error) {
	cols := make([]string, len(header))
	index := map[string]int{}
	for i, h := range header {
		h = utils.TrimOrEmpty(h)
		cols[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cell := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return utils.TrimOrEmpty(rec[i])
	}

	t := models.Table{Columns: cols, Rows: make([]models.Missort, 0, len(records))}
	for _, r := range records {
		rec := r.cells
		if isBlankRecord(rec) {
			continue
		}
		row := models.Missort{
			TrackingID: cell(rec, domain.ColTrackingID),
			DSPName:    dspCell(cell(rec, domain.ColDSPName)),
			DAName:     cell(rec, domain.ColDAName),
			Route:      cell(rec, domain.ColRoute),
		}
		if _, ok := index[domain.ColCost]; ok {
			cost, has, err := utils.ParseCost(cell(rec, domain.ColCost))
			if err != nil {
				return models.Table{}, domain.ParseError{Line: r.line, Column: domain.ColCost, Msg: err.Error(), Err: err}
			}
			row.Cost, row.HasCost = cost, has
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// dspCell blanks placeholder carriers so they fall back to FLEX.
func dspCell(v string) string {
	if utils.IsMissingValue(v) {
		return ""
	}
	return v
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
