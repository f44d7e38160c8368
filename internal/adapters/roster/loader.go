// Package roster loads the eligible-voter allow-list from a spreadsheet.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Raju-02-19/college-voting-system/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// canonical column order in a parsed row
const (
	colRoll = iota
	colEmail
	colBranch
	colYear
	numCols
)

// headerKeys are matched by substring against lower-cased header names
var headerKeys = [numCols]string{"roll", "email", "branch", "year"}

// Load reads the roster at path. A missing file yields an empty roster.
// Supported formats: .xlsx (first sheet) and .csv.
func Load(path string) (*domain.Roster, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️ Roster file %s not found, no student can register", path)
		return domain.NewRoster(nil), nil
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}

	r := domain.NewRoster(Parse(rows))
	log.Printf("✅ Roster loaded: %d eligible students", r.Len())
	return r, nil
}

// Parse converts a header row plus data rows into roster entries.
// Columns are located by substring; absent columns yield "".
func Parse(rows [][]string) []domain.RosterEntry {
	if len(rows) == 0 {
		return nil
	}

	index := [numCols]int{-1, -1, -1, -1}
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		// later matches win, same as a column rename map
		for c, key := range headerKeys {
			if strings.Contains(h, key) {
				index[c] = i
			}
		}
	}

	cell := func(row []string, c int) string {
		i := index[c]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	entries := make([]domain.RosterEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		roll := domain.NormalizeRoll(cell(row, colRoll))
		if roll == "" {
			continue
		}
		entries = append(entries, domain.RosterEntry{
			RollNumber: roll,
			Email:      cell(row, colEmail),
			Branch:     cell(row, colBranch),
			Year:       cell(row, colYear),
		})
	}
	return entries
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeCSV(f)
}

func decodeCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}
