// Package loader reads DVF transaction exports into a typed model.Table.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// Loader reads delimited transaction files, trying each configured encoding in turn.
type Loader struct {
	logger    *slog.Logger
	encodings []Encoding
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithEncodings replaces the encoding fallback sequence.
func WithEncodings(encodings ...Encoding) Option {
	return func(l *Loader) { l.encodings = encodings }
}

// New creates a Loader. Without options it tries UTF-8 then Latin-1.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger:    slog.Default(),
		encodings: DefaultEncodings,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load reads path with a default Loader.
func Load(path string) (model.Table, error) {
	return New().Load(path)
}

// Load reads the file at path and returns its rows.
func (l *Loader) Load(path string) (model.Table, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Table{}, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return model.Table{}, fmt.Errorf("reading %s: %w", path, err)
	}

	text, encoding, err := decode(path, data, l.encodings)
	if err != nil {
		return model.Table{}, err
	}

	tbl, invalid, err := parse(path, text)
	if err != nil {
		return model.Table{}, err
	}
	tbl.Encoding = encoding

	if encoding != l.encodings[0].Name {
		l.logger.Info("decoded with fallback encoding", "path", path, "encoding", encoding)
	}
	for _, col := range sortedKeys(invalid) {
		l.logger.Warn("unparsable cells loaded as missing", "path", path, "column", col, "count", invalid[col])
	}

	attrs := []any{
		"path", path,
		"rows", tbl.Len(),
		"columns", len(tbl.Columns),
		"encoding", encoding,
		"delimiter", string(tbl.Delimiter),
		"elapsed", time.Since(start),
	}
	if first, last, ok := period(tbl.Rows); ok {
		attrs = append(attrs, "period_start", first.Format("2006-01-02"), "period_end", last.Format("2006-01-02"))
	}
	l.logger.Info("loaded transactions", attrs...)

	return tbl, nil
}

// detectDelimiter picks ';' when the header uses it more than ','.
func detectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

func parse(path, text string) (model.Table, map[string]int, error) {
	if strings.TrimSpace(text) == "" {
		return model.Table{}, nil, malformed(path, "empty file")
	}

	headerLine, _, _ := strings.Cut(text, "\n")
	delim := detectDelimiter(headerLine)

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Table{}, nil, malformed(path, "missing header row")
		}
		return model.Table{}, nil, fmt.Errorf("%w: %s: reading header: %w", ErrMalformedFile, path, err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		col := strings.ToLower(strings.TrimSpace(h))
		if col == "" {
			return model.Table{}, nil, malformed(path, "empty column name at position %d", i+1)
		}
		if seen[col] {
			return model.Table{}, nil, malformed(path, "duplicate column %q", col)
		}
		seen[col] = true
		columns[i] = col
	}

	records, err := cr.ReadAll()
	if err != nil {
		return model.Table{}, nil, fmt.Errorf("%w: %s: %w", ErrMalformedFile, path, err)
	}

	p := newRowParser(columns, delim)
	tbl := model.Table{
		Columns:   columns,
		Kinds:     make(map[string]model.Kind, len(columns)),
		Delimiter: delim,
		Rows:      make([]model.RawTransaction, 0, len(records)),
	}
	for _, rec := range records {
		tbl.Rows = append(tbl.Rows, p.parse(rec))
	}

	for i, col := range columns {
		if kind, known := model.SchemaColumns[col]; known {
			tbl.Kinds[col] = kind
			continue
		}
		tbl.ExtraColumns = append(tbl.ExtraColumns, col)
		values := make([]string, len(records))
		for j, rec := range records {
			values[j] = rec[i]
		}
		tbl.Kinds[col] = inferKind(values, delim)
	}

	return tbl, p.invalid, nil
}

func period(rows []model.RawTransaction) (first, last time.Time, ok bool) {
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		if !ok || r.Date.Before(first) {
			first = r.Date
		}
		if !ok || r.Date.After(last) {
			last = r.Date
		}
		ok = true
	}
	return first, last, ok
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
