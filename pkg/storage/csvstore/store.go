// Package csvstore persists the generated tables as flat CSV files. Tables
// are staged into a temporary directory first and only moved into the target
// directory once every file has been written and flushed, so a failed run
// never leaves a partial, referentially inconsistent table set behind.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/angelmondragon/storesim/pkg/logger"
)

// Table is one named CSV file: a header row plus one record per entity.
type Table struct {
	Name    string
	Header  []string
	Records [][]string
}

// Row is anything that can render itself as a CSV record.
type Row interface {
	Record() []string
}

// BuildTable materializes a typed row slice into a Table.
func BuildTable[T Row](name string, header []string, rows []T) Table {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return Table{Name: name, Header: header, Records: records}
}

// Store writes table sets into a target directory.
type Store struct {
	dir  string
	logg *logger.Logger
}

// NewStore validates the target directory and returns a store.
func NewStore(dir string, logg *logger.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("csv store directory is required")
	}
	return &Store{dir: dir, logg: logg}, nil
}

// Dir returns the directory tables are published into.
func (s *Store) Dir() string {
	return s.dir
}

// WriteAll stages every table and then publishes them together. Any failure
// before publish aborts the run with nothing written to the target directory.
func (s *Store) WriteAll(ctx context.Context, tables []Table) error {
	if len(tables) == 0 {
		return errors.New("no tables to write")
	}
	for _, table := range tables {
		if err := validateTable(table); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", s.dir, err)
	}

	// Stage on the same volume as the target so the final rename is cheap.
	staging, err := os.MkdirTemp(s.dir, ".staging-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("staging cleanup failed: %v", rmErr))
		}
	}()

	for _, table := range tables {
		if err := writeTable(filepath.Join(staging, table.Name+".csv"), table); err != nil {
			return err
		}
	}

	for _, table := range tables {
		name := table.Name + ".csv"
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("publishing %s: %w", name, err)
		}
		if s.logg != nil {
			s.logg.Info(ctx, fmt.Sprintf("wrote %s (%d rows)", name, len(table.Records)))
		}
	}
	return nil
}

func validateTable(table Table) error {
	if table.Name == "" {
		return errors.New("table name is required")
	}
	if len(table.Header) == 0 {
		return fmt.Errorf("table %s has no header", table.Name)
	}
	for i, record := range table.Records {
		if len(record) != len(table.Header) {
			return fmt.Errorf("table %s row %d has %d fields, header has %d", table.Name, i, len(record), len(table.Header))
		}
	}
	return nil
}

func writeTable(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		f.Close()
		return fmt.Errorf("writing header for %s: %w", table.Name, err)
	}
	if err := w.WriteAll(table.Records); err != nil {
		f.Close()
		return fmt.Errorf("writing rows for %s: %w", table.Name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", table.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
