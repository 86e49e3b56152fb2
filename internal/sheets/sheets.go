// Package sheets pulls reference tables from published Google Sheets
// documents. The game database never carried display names for monster
// classes or elemental attributes; those live in community-maintained
// spreadsheets instead.
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/r2db/catalog/internal/cache"
)

// Table is one fetched sheet: a header row plus data rows. The zero value
// is a valid empty table whose lookups all miss.
type Table struct {
	columns map[string]int
	rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.rows) == 0 }

// Lookup returns the value of wantCol on the first row whose keyCol equals
// key, "" when there is no match.
func (t Table) Lookup(keyCol, key, wantCol string) string {
	ki, ok := t.columns[keyCol]
	if !ok {
		return ""
	}
	wi, ok := t.columns[wantCol]
	if !ok {
		return ""
	}
	for _, row := range t.rows {
		if ki < len(row) && row[ki] == key {
			if wi < len(row) {
				return row[wi]
			}
			return ""
		}
	}
	return ""
}

// Matches returns, for every row whose keyCol equals key, the values of
// wantCols in order. Cells past a short row read "".
func (t Table) Matches(keyCol, key string, wantCols ...string) [][]string {
	ki, ok := t.columns[keyCol]
	if !ok {
		return nil
	}
	var out [][]string
	for _, row := range t.rows {
		if ki >= len(row) || row[ki] != key {
			continue
		}
		vals := make([]string, len(wantCols))
		for i, col := range wantCols {
			if wi, ok := t.columns[col]; ok && wi < len(row) {
				vals[i] = row[wi]
			}
		}
		out = append(out, vals)
	}
	return out
}

// ExportURL turns a browser share link into the CSV export endpoint.
func ExportURL(shareURL string) (string, error) {
	_, rest, ok := strings.Cut(shareURL, "/d/")
	if !ok {
		return "", fmt.Errorf("sheet url %q has no document id", shareURL)
	}
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return "", fmt.Errorf("sheet url %q has no document id", shareURL)
	}
	return "https://docs.google.com/spreadsheets/d/" + id + "/export?format=csv", nil
}

// Client fetches and caches sheet tables. Every failure mode degrades to
// an empty table, so a dead spreadsheet only blanks the affected labels.
type Client struct {
	http  *http.Client
	cache *cache.TTL[string, Table]
	log   *zap.Logger
}

func NewClient(timeout, ttl time.Duration, log *zap.Logger) *Client {
	return &Client{
		http:  &http.Client{Timeout: timeout},
		cache: cache.NewTTL[string, Table](ttl, 16),
		log:   log.Named("sheets"),
	}
}

// Fetch returns the table behind a share URL, served from cache when
// fresh. An unset URL or any fetch or parse failure yields an empty table.
func (c *Client) Fetch(ctx context.Context, shareURL string) Table {
	if shareURL == "" {
		return Table{}
	}
	if t, ok := c.cache.Get(shareURL); ok {
		return t
	}

	t, err := c.fetch(ctx, shareURL)
	if err != nil {
		c.log.Warn("sheet fetch failed", zap.String("url", shareURL), zap.Error(err))
		return Table{}
	}
	c.cache.Set(shareURL, t)
	return t
}

func (c *Client) fetch(ctx context.Context, shareURL string) (Table, error) {
	exportURL, err := ExportURL(shareURL)
	if err != nil {
		return Table{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return Table{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Table{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Table{}, fmt.Errorf("sheet export returned %s", resp.Status)
	}
	return parseTable(resp.Body)
}

func parseTable(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	return Table{columns: columns, rows: records[1:]}, nil
}
