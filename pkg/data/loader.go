package data

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding tolerates arbitrary bytes in the source file.
const DefaultEncoding = "ISO-8859-1"

// DefaultNAValues are the cell values read as missing. They match the
// tokens pandas treats as NA by default.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

type loadConfig struct {
	encoding  string
	delimiter rune
	naValues  []string
}

// LoadOption configures ReadCSV and ReadZipCSV.
type LoadOption func(*loadConfig)

// WithEncoding sets the IANA name of the source character encoding.
func WithEncoding(name string) LoadOption {
	return func(c *loadConfig) { c.encoding = name }
}

// WithDelimiter sets the field delimiter.
func WithDelimiter(r rune) LoadOption {
	return func(c *loadConfig) { c.delimiter = r }
}

// WithNAValues replaces the set of cell values read as missing.
func WithNAValues(values ...string) LoadOption {
	return func(c *loadConfig) { c.naValues = values }
}

// ReadZipCSV extracts entry from the zip archive at path and parses it into a Table.
func ReadZipCSV(path, entry string, opts ...LoadOption) (*Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchive, path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, entry, err)
		}
		defer rc.Close()
		return ReadCSV(rc, opts...)
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrEntryNotFound, entry, path)
}

// ReadCSV decodes r with the configured encoding and parses it as delimited
// text with a header row. Spaces in column names become underscores.
func ReadCSV(r io.Reader, opts ...LoadOption) (*Table, error) {
	cfg := loadConfig{encoding: DefaultEncoding, delimiter: ',', naValues: DefaultNAValues}
	for _, o := range opts {
		o(&cfg)
	}

	enc, err := ianaindex.IANA.Encoding(cfg.encoding)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrEncoding, cfg.encoding)
	}

	text, err := io.ReadAll(enc.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if header, ok := headerOnly(text, cfg.delimiter); ok {
		cols := make([]*Column, len(header))
		for i, name := range header {
			cols[i] = inferColumn(NormalizeName(name), nil, nil)
		}
		return NewTable(cols...)
	}

	df := dataframe.ReadCSV(bytes.NewReader(text),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(cfg.naValues),
		dataframe.WithDelimiter(cfg.delimiter),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, df.Err)
	}

	cols := make([]*Column, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		cols = append(cols, inferColumn(NormalizeName(name), s.Records(), s.IsNaN()))
	}
	return NewTable(cols...)
}

// headerOnly returns the header fields when text holds a header row and
// nothing after it. gota refuses such input as an empty DataFrame.
func headerOnly(text []byte, delimiter rune) ([]string, bool) {
	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, false
	}
	if _, err := cr.Read(); err != io.EOF {
		return nil, false
	}
	return header, true
}

// NormalizeName replaces spaces so that column names can be used as identifiers.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// inferColumn returns a Numeric column when every present value parses as a
// float, otherwise a String column. An all-missing column is Numeric.
func inferColumn(name string, raw []string, null []bool) *Column {
	nums := make([]float64, len(raw))
	for i, v := range raw {
		if null[i] {
			nums[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			text := make([]string, len(raw))
			for j, v := range raw {
				if !null[j] {
					text[j] = v
				}
			}
			return NewStringColumn(name, text, null)
		}
		nums[i] = f
	}
	return NewNumericColumn(name, nums)
}
