package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tanah-scraper/models"
)

// csvHeader is the downstream CSV contract: semicolon-delimited, French
// column names, header row present even when the run accepts nothing.
var csvHeader = []string{"Titre", "Prix", "Surface (m2)", "Prix/m2", "Lien"}

// CSVWriter writes accepted listings to the result file. The header is
// written at construction time, so a file created here is always valid
// even if the run later fails.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created
// automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: flush header: %w", err)
	}

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteListings appends one row per accepted listing. Fields containing
// the delimiter or quotes are escaped by encoding/csv.
func (c *CSVWriter) WriteListings(listings []*models.Listing) error {
	for _, l := range listings {
		row := []string{
			l.Title,
			strconv.FormatInt(l.PriceIdr, 10),
			strconv.Itoa(l.SurfaceSqm),
			strconv.FormatInt(l.PricePerSqm, 10),
			l.Link,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return err
	}
	return c.file.Close()
}
