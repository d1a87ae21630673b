package lotsize

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Candidate column names, matched case-insensitively against trimmed
// headers in priority order. The publisher has renamed these columns
// more than once; the fuzzy pass below catches spellings not seen yet.
var (
	symbolHeaders     = []string{"symbol", "underlying", "underlying_symbol", "tradingsymbol", "security"}
	lotHeaders        = []string{"market lot", "market_lot", "lot_size", "lotsize", "qty freeze lot", "quantity freeze"}
	instrumentHeaders = []string{"instrument", "instrumenttype", "inst type", "series"}
)

// columnMapping is the result of header resolution: column indices into
// each CSV record. instrument is -1 when no such column exists, which
// only disables instrument-type filtering.
type columnMapping struct {
	symbol     int
	lot        int
	instrument int
}

// resolveColumns maps the header row to column indices. Exact candidates
// win over fuzzy containment; symbol and lot are mandatory.
func resolveColumns(header []string) (columnMapping, error) {
	m := columnMapping{symbol: -1, lot: -1, instrument: -1}

	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	find := func(candidates []string) int {
		for _, cand := range candidates {
			for i, h := range lower {
				if h == cand {
					return i
				}
			}
		}
		return -1
	}

	m.symbol = find(symbolHeaders)
	m.lot = find(lotHeaders)
	m.instrument = find(instrumentHeaders)

	if m.symbol == -1 {
		for i, h := range lower {
			if h == "" {
				continue
			}
			if strings.Contains(h, "symbol") || strings.Contains(h, "underly") {
				m.symbol = i
				break
			}
		}
	}
	if m.lot == -1 {
		for i, h := range lower {
			if h == "" {
				continue
			}
			if strings.Contains(h, "lot") && (strings.Contains(h, "size") || strings.Contains(h, "market")) {
				m.lot = i
				break
			}
		}
	}

	if m.symbol == -1 || m.lot == -1 {
		return m, &ParseError{Reason: fmt.Sprintf("could not locate symbol/lot columns in header %v", header)}
	}
	return m, nil
}

// Parse turns a gzipped contract CSV into a lot-size table.
//
// It fails on:
//   - bad gzip framing or a truncated stream
//   - a header without recognizable symbol and lot columns
//   - a file that yields zero usable rows
//
// It tolerates:
//   - invalid UTF-8 (offending bytes dropped), variable column counts
//     and quoting quirks
//   - rows with blank symbols, unparsable lots or non-derivative
//     instrument types (skipped)
func Parse(raw []byte) (Table, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Reason: "not a gzip archive", Err: err}
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, &ParseError{Reason: "decompress archive", Err: err}
	}

	r := csv.NewReader(strings.NewReader(strings.ToValidUTF8(string(text), "")))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &ParseError{Reason: "empty contract file", Err: err}
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: "malformed csv", Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Reason: "contract file parsed but contains no rows"}
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	field := func(rec []string, idx int) string {
		if idx >= 0 && idx < len(rec) {
			return rec[idx]
		}
		return ""
	}

	table := make(Table)
	for _, rec := range records {
		symbol := NormalizeSymbol(field(rec, cols.symbol))
		if symbol == "" {
			continue
		}

		if cols.instrument != -1 {
			inst := strings.ToUpper(strings.TrimSpace(field(rec, cols.instrument)))
			if inst != "" && !strings.Contains(inst, "OPT") && !strings.Contains(inst, "FUT") {
				continue
			}
		}

		lot, ok := parseLot(field(rec, cols.lot))
		if !ok {
			continue
		}
		// First valid occurrence wins; later rows never overwrite.
		if _, seen := table[symbol]; !seen {
			table[symbol] = lot
		}
	}

	if len(table) == 0 {
		return nil, &ParseError{Reason: "no usable lot sizes in contract file"}
	}
	return table, nil
}

// parseLot converts a raw lot cell to a positive int. Values arrive with
// thousands separators and occasional decimal points ("1,200.0").
func parseLot(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	lot := int(f)
	if lot <= 0 {
		return 0, false
	}
	return lot, true
}
