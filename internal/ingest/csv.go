// Package ingest parses bank-statement CSV files into statement records for
// sequential classification.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucre-fin/lucre/internal/model"
)

// Supported statement date layouts.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ParseStatement reads a statement CSV with columns
// date,description,value[,kind] and returns records in file order. A header
// row is detected and skipped. Rows missing a kind column derive it from
// the amount's sign.
func ParseStatement(r io.Reader) ([]model.StatementRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []model.StatementRecord
	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line+1, err)
		}
		line++

		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", line, len(row))
		}

		if line == 1 && isHeader(row) {
			continue
		}

		date, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		amount, err := parseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		record := model.StatementRecord{
			Date:        date,
			Description: strings.TrimSpace(row[1]),
			Amount:      amount,
		}

		if len(row) >= 4 && strings.TrimSpace(row[3]) != "" {
			kind := model.TransactionKind(strings.ToLower(strings.TrimSpace(row[3])))
			if !kind.Valid() {
				return nil, fmt.Errorf("row %d: unknown transaction kind %q", line, row[3])
			}
			record.Kind = kind
		} else {
			record.Kind = model.KindFromAmount(amount)
		}

		records = append(records, record)
	}

	return records, nil
}

func isHeader(row []string) bool {
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "date" || first == "data"
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	// Brazilian statements often use comma as the decimal separator.
	if strings.Contains(trimmed, ",") && !strings.Contains(trimmed, ".") {
		trimmed = strings.ReplaceAll(trimmed, ",", ".")
	} else {
		trimmed = strings.ReplaceAll(trimmed, ",", "")
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}
