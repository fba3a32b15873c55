// Package sheets pulls user rows out of a shared Google Sheet. Only the
// spreadsheet's published CSV export is consumed; there is no Sheets API
// credential involved.
package sheets

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBadURL is returned for URLs that are not a Sheets edit link
var ErrBadURL = errors.New("not a recognizable google sheets edit url")

// Row is one user row keyed by the lower-cased header names
type Row map[string]string

// Get returns the named column, trimmed, or "" when absent
func (r Row) Get(name string) string {
	return strings.TrimSpace(r[name])
}

// ExportURL derives the CSV export endpoint from a Sheets edit URL of the
// shape https://docs.google.com/spreadsheets/d/<id>/edit...
func ExportURL(editURL string) (string, error) {
	if !strings.Contains(editURL, "/edit") {
		return "", ErrBadURL
	}
	_, after, found := strings.Cut(editURL, "/d/")
	if !found {
		return "", ErrBadURL
	}
	id, _, _ := strings.Cut(after, "/")
	if id == "" {
		return "", ErrBadURL
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=0", id), nil
}

// Fetcher downloads and parses a sheet export
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a Fetcher with a bounded timeout
func NewFetcher() *Fetcher {
	return &Fetcher{HTTPClient: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch downloads the CSV export and returns its data rows. The first
// record is the header; header names are matched case-insensitively.
func (f *Fetcher) Fetch(ctx context.Context, exportURL string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export returned %d", resp.StatusCode)
	}
	return ParseRows(resp.Body)
}

// ParseRows reads header-mapped rows from CSV data
func ParseRows(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	// Strip the UTF-8 BOM Sheets exports sometimes carry
	if head, err := br.Peek(3); err == nil && len(head) == 3 &&
		head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Rows may be ragged

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("sheet export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("sheet header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", len(rows)+2, err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
