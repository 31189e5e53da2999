package stock

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// csvHeader is the column layout written to the local cache file
var csvHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// FileStore reads and writes price records as a CSV file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the CSV file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the cache file
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the cache file is present
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", s.path, err)
}

// Read loads all records from the cache file in file order.
// Contents are not checked against any requested range.
func (s *FileStore) Read() ([]PriceRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return records, nil
}

// Write persists records, replacing the file atomically via a temp file and rename.
func (s *FileStore) Write(records []PriceRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := WriteCSV(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}
	return nil
}

// WriteCSV encodes records with a header row. Floats use the shortest
// representation that parses back to the same value.
func WriteCSV(w io.Writer, records []PriceRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.DateString(),
			strconv.FormatFloat(r.Open, 'f', -1, 64),
			strconv.FormatFloat(r.High, 'f', -1, 64),
			strconv.FormatFloat(r.Low, 'f', -1, 64),
			strconv.FormatFloat(r.Close, 'f', -1, 64),
			strconv.FormatInt(r.Volume, 10),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV decodes records written by WriteCSV. Columns are located by header
// name, so files with extra columns (e.g. "Adj Close") are accepted.
func ReadCSV(r io.Reader) ([]PriceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []PriceRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	idx := make([]int, len(csvHeader))
	for i, name := range csvHeader {
		pos, ok := cols[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = pos
	}

	records := []PriceRecord{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, idx []int) (PriceRecord, error) {
	field := func(i int) (string, error) {
		if idx[i] >= len(row) {
			return "", fmt.Errorf("missing value for %s", csvHeader[i])
		}
		return strings.TrimSpace(row[idx[i]]), nil
	}

	var rec PriceRecord
	raw, err := field(0)
	if err != nil {
		return rec, err
	}
	// Accept timestamps written by tools that keep the time part
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	rec.Date, err = time.Parse(DateLayout, raw)
	if err != nil {
		return rec, fmt.Errorf("invalid date %q: %w", raw, err)
	}

	prices := []*float64{&rec.Open, &rec.High, &rec.Low, &rec.Close}
	for i, dst := range prices {
		raw, err := field(i + 1)
		if err != nil {
			return rec, err
		}
		if *dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return rec, fmt.Errorf("invalid %s %q: %w", csvHeader[i+1], raw, err)
		}
	}

	raw, err = field(5)
	if err != nil {
		return rec, err
	}
	// Volume may have been written as a float by other tools
	vol, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return rec, fmt.Errorf("invalid Volume %q: %w", raw, err)
	}
	rec.Volume = int64(vol)
	return rec, nil
}
