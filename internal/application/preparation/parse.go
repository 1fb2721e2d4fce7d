package preparation

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

var errMissingColumn = errors.New("missing column")

// table is a parsed delimiter-separated file addressed by column name.
type table struct {
	name    string
	header  []string
	index   map[string]int
	records [][]string
}

// parseTable lê um CSV com cabeçalho. O delimitador padrão é ';' e cai para ','
// quando o cabeçalho não contém ';'.
func parseTable(file entity.SnapshotFile) (*table, error) {
	data := bytes.TrimPrefix(file.Data, []byte("\xef\xbb\xbf"))

	comma := ';'
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if !bytes.ContainsRune(firstLine, ';') && bytes.ContainsRune(firstLine, ',') {
		comma = ','
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", file.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: error reading header: %w", file.Name, err)
	}

	t := &table{name: file.Name, index: make(map[string]int, len(header))}
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		t.header = append(t.header, col)
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		t.records = append(t.records, record)
	}
	return t, nil
}

// require checks that every column exists.
func (t *table) require(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if _, ok := t.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", t.name, errMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// value returns the trimmed cell of column col, or "" when absent.
func (t *table) value(record []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// rename changes a column name, like renaming products.id to productid.
func (t *table) rename(from, to string) {
	if _, exists := t.index[to]; exists {
		return
	}
	if i, ok := t.index[from]; ok {
		delete(t.index, from)
		t.index[to] = i
		t.header[i] = to
	}
}

// date coerces a cell to a Date; unparseable values become absent.
func (t *table) date(record []string, col string) entity.Date {
	d, err := entity.ParseDate(t.value(record, col))
	if err != nil {
		return entity.Date{}
	}
	return d
}

// parseNumber accepts '.' or ',' as decimal separator, with optional thousands separators.
func parseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	comma, dot := strings.LastIndex(value, ","), strings.LastIndex(value, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	case comma >= 0 && dot >= 0:
		value = strings.ReplaceAll(value, ",", "")
	case comma >= 0:
		value = strings.ReplaceAll(value, ",", ".")
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalizeID trims ids and strips a trailing ".0" a spreadsheet export may add.
func normalizeID(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, ".0") {
		if _, err := strconv.ParseInt(strings.TrimSuffix(value, ".0"), 10, 64); err == nil {
			return strings.TrimSuffix(value, ".0")
		}
	}
	return value
}

// contractRow is a parsed contract plus what cleaning needs to know about the raw row.
type contractRow struct {
	contract    entity.Contract
	hasUsage    bool
	fingerprint string
}

func parseContracts(file entity.SnapshotFile, downloadDate entity.Date) ([]contractRow, error) {
	t, err := parseTable(file)
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "usage", "startdate", "enddate", "productid"); err != nil {
		return nil, err
	}

	rows := make([]contractRow, 0, len(t.records))
	for _, rec := range t.records {
		usage, ok := parseNumber(t.value(rec, "usage"))
		rows = append(rows, contractRow{
			contract: entity.Contract{
				ID:               normalizeID(t.value(rec, "id")),
				Usage:            usage,
				StartDate:        t.date(rec, "startdate"),
				EndDate:          t.date(rec, "enddate"),
				Status:           t.value(rec, "status"),
				ProductID:        normalizeID(t.value(rec, "productid")),
				CreatedAt:        t.date(rec, "createdat"),
				ModificationDate: t.date(rec, "modificationdate"),
				DownloadDate:     downloadDate,
			},
			hasUsage:    ok,
			fingerprint: fingerprint(rec),
		})
	}
	return rows, nil
}

func parseProducts(file entity.SnapshotFile) ([]entity.Product, error) {
	t, err := parseTable(file)
	if err != nil {
		return nil, err
	}
	t.rename("id", "productid")
	if err := t.require("productid", "productname"); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(t.records))
	for _, rec := range t.records {
		products = append(products, entity.Product{
			ProductID:        normalizeID(t.value(rec, "productid")),
			ProductName:      t.value(rec, "productname"),
			ModificationDate: t.date(rec, "modificationdate"),
		})
	}
	return products, nil
}

// priceRow keeps the parse outcome of one price line.
type priceRow struct {
	price    entity.Price
	hasPrice bool
}

// parsePrices ignores the prices table's own id column; productid is the key.
func parsePrices(file entity.SnapshotFile, downloadDate entity.Date) ([]priceRow, error) {
	t, err := parseTable(file)
	if err != nil {
		return nil, err
	}
	if err := t.require("productid", "productcomponent", "price", "valid_from", "valid_until"); err != nil {
		return nil, err
	}

	rows := make([]priceRow, 0, len(t.records))
	for _, rec := range t.records {
		value, ok := parseNumber(t.value(rec, "price"))
		rows = append(rows, priceRow{
			price: entity.Price{
				ProductID:    normalizeID(t.value(rec, "productid")),
				Component:    entity.PriceComponent(strings.ToLower(t.value(rec, "productcomponent"))),
				Price:        value,
				Unit:         t.value(rec, "unit"),
				ValidFrom:    t.date(rec, "valid_from"),
				ValidUntil:   t.date(rec, "valid_until"),
				DownloadDate: downloadDate,
			},
			hasPrice: ok,
		})
	}
	return rows, nil
}

// fingerprint identifies a raw row across all of its columns.
func fingerprint(record []string) string {
	cells := make([]string, len(record))
	for i, c := range record {
		cells[i] = strings.TrimSpace(c)
	}
	return strings.Join(cells, "\x1f")
}
