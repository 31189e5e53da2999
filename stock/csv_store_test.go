package stock

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()[:1]))

	assert.Equal(t, "Date,Open,High,Low,Close,Volume\n2020-01-02,533.66,538.1,529.25,536.12,41200\n", buf.String())
}

func TestReadCSVAcceptsExtraColumnsAndTimestamps(t *testing.T) {
	in := "Date,Adj Close,Close,High,Low,Open,Volume\n" +
		"2020-01-02 00:00:00+00:00,530.1,536.12,538.1,529.25,533.66,41200.0\n"

	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sampleRecords()[0], got[0])
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "missing column", in: "Date,Open,High,Low,Close\n2020-01-02,1,1,1,1\n"},
		{name: "bad date", in: "Date,Open,High,Low,Close,Volume\n02/01/2020,1,1,1,1,1\n"},
		{name: "bad volume", in: "Date,Open,High,Low,Close,Volume\n2020-01-02,1,1,1,1,lots\n"},
		{name: "short row", in: "Date,Open,High,Low,Close,Volume\n2020-01-02,1,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	got, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStoreExistsAndWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "prices.csv"))

	exists, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Write(sampleRecords()))

	exists, err = store.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "prices.csv", entries[0].Name())

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}

func TestPriceRecordDateString(t *testing.T) {
	r := PriceRecord{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03-09", r.DateString())
}
