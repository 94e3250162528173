package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/slugger/internal/domain/model"
)

// Column names of the hitters file besides the metric columns.
const (
	ColumnName      = "Name"
	ColumnQualified = "isQualified"

	utf8BOM = "\ufeff"
)

// cells treated as a missing value.
var nullCells = map[string]struct{}{
	"": {}, "nan": {}, "na": {}, "n/a": {}, "null": {}, "none": {}, "-": {},
}

// LoadResult is a parsed dataset plus the names of rows dropped as duplicates.
type LoadResult struct {
	Dataset    model.Dataset
	Duplicates []string
}

// LoadCSV parses a row-per-player CSV. The header must contain Name and
// isQualified; metric columns are matched by exact name and a missing metric
// column leaves that metric null for every player.
func LoadCSV(ctx context.Context, r io.Reader, metrics []model.Metric) (LoadResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return LoadResult{}, fmt.Errorf("%w: empty file", ErrMalformedDataset)
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: header: %w", ErrMalformedDataset, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	nameCol, ok := cols[ColumnName]
	if !ok {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnName)
	}
	qualCol, ok := cols[ColumnQualified]
	if !ok {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnQualified)
	}
	metricCols := make(map[model.Metric]int, len(metrics))
	for _, m := range metrics {
		if i, ok := cols[string(m)]; ok {
			metricCols[m] = i
		}
	}

	var (
		records []model.PlayerRecord
		dups    []string
		seen    = make(map[string]struct{})
	)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return LoadResult{}, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return LoadResult{}, fmt.Errorf("%w: line %d: %w", ErrMalformedDataset, line, err)
		}

		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			return LoadResult{}, fmt.Errorf("%w: line %d: empty %s", ErrMalformedDataset, line, ColumnName)
		}
		qualified, err := parseBool(row[qualCol])
		if err != nil {
			return LoadResult{}, fmt.Errorf("%w: line %d: %s: %w", ErrMalformedDataset, line, ColumnQualified, err)
		}
		stats := make(model.Values, len(metricCols))
		for m, i := range metricCols {
			v, ok, err := parseValue(row[i])
			if err != nil {
				return LoadResult{}, fmt.Errorf("%w: line %d: %s: %w", ErrMalformedDataset, line, m, err)
			}
			if ok {
				stats[m] = v
			}
		}

		if _, dup := seen[name]; dup {
			dups = append(dups, name)
			continue
		}
		seen[name] = struct{}{}
		records = append(records, model.PlayerRecord{Name: name, Qualified: qualified, Stats: stats})
	}

	return LoadResult{Dataset: model.NewDataset(records), Duplicates: dups}, nil
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return false, nil
	}
	return strconv.ParseBool(s)
}

// parseValue returns the cell value and false for a null cell.
// Infinite values are rejected; NaN spellings are null.
func parseValue(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %q", ErrNonFiniteValue, s)
	}
	return v, true, nil
}

func isNull(s string) bool {
	_, ok := nullCells[strings.ToLower(s)]
	return ok
}
