package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
)

// PrizeImport is the outcome of parsing a prize catalog CSV
type PrizeImport struct {
	Prizes    []*models.Prize
	TotalRows int
	Errors    []string
}

// ParsePrizesCSV reads a catalog with a header row. Columns are matched by
// name, in any order; image is optional. Rows that fail to parse are reported
// in Errors and left out of Prizes.
func ParsePrizesCSV(r io.Reader) (*PrizeImport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx := findColumnIndex(header, []string{"name", "nombre", "premio"})
	imageIdx := findColumnIndex(header, []string{"image", "imagen", "image url"})
	weightIdx := findColumnIndex(header, []string{"weight", "peso"})
	if nameIdx == -1 {
		return nil, errors.New("name column not found in CSV")
	}
	if weightIdx == -1 {
		return nil, errors.New("weight column not found in CSV")
	}

	result := &PrizeImport{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		result.TotalRows++
		line := result.TotalRows + 1
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}

		name := field(row, nameIdx)
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: empty name", line))
			continue
		}
		weight, err := strconv.ParseFloat(field(row, weightIdx), 64)
		if err != nil || weight < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid weight %q", line, field(row, weightIdx)))
			continue
		}

		result.Prizes = append(result.Prizes, &models.Prize{
			Name:   name,
			Image:  field(row, imageIdx),
			Weight: weight,
		})
	}
	return result, nil
}

// findColumnIndex finds the index of the first header matching one of names, ignoring case
func findColumnIndex(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
