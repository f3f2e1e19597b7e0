// Package feed provides the data-source collaborators that hand raw row
// batches to the engine.
package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"os"

	"github.com/samber/lo"

	"github.com/nicoortuno/econtrack/core"
)

// ---------------------
// Constants and Errors
// ---------------------

var (
	// ErrEmptyTable is returned when a table file holds no data rows
	ErrEmptyTable = errors.New("empty table")
)

// ---------------------
// Types
// ---------------------

// CSVTable describes one delimited table file produced by a fetch job.
type CSVTable struct {
	Name  string
	File  string
	Comma rune
}

// CSVFeed reads a delimited table into raw rows. It implements
// core.Source; all interpretation of cells happens downstream.
type CSVFeed struct {
	table CSVTable
	log   core.Logger
}

// ---------------------
// Constructor
// ---------------------

// NewCSVFeed creates a feed for one table file.
func NewCSVFeed(table CSVTable, log core.Logger) *CSVFeed {
	if table.Comma == 0 {
		table.Comma = ','
	}
	return &CSVFeed{table: table, log: log}
}

// Name returns the logical table name.
func (f *CSVFeed) Name() string {
	return f.table.Name
}

// Rows reads the whole file and returns one row per data line, in file
// order. Empty cells are omitted from the row so that candidate-name
// resolution falls through to the next populated column of the same
// field; downstream coercion treats the missing key as "no value".
func (f *CSVFeed) Rows(_ context.Context) ([]core.Row, error) {
	file, err := os.Open(f.table.File)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = f.table.Comma
	reader.FieldsPerRecord = -1

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, ErrEmptyTable
	}

	header := lines[0]
	rows := make([]core.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := make(core.Row, len(header))
		for i, cell := range line {
			if i >= len(header) || cell == "" {
				continue
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}

	// Lines with no populated cell carry nothing worth positioning.
	rows = lo.Filter(rows, func(row core.Row, _ int) bool {
		return len(row) > 0
	})
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	f.log.WithField("table", f.table.Name).Debugf("read %d rows from %s", len(rows), f.table.File)
	return rows, nil
}
