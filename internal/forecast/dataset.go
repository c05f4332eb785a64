package forecast

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Sample is one row of the population dataset.
type Sample struct {
	Age         float64
	BMI         float64
	StressLevel float64
	SleepHours  float64
	Symptoms    string
}

// features returns the model's feature vector: age, bmi, stress, sleep.
func (s Sample) features() []float64 {
	return []float64{s.Age, s.BMI, s.StressLevel, s.SleepHours}
}

// Column names, compared after normalizeHeader.
const (
	colAge      = "age"
	colBMI      = "bmi"
	colStress   = "stress level"
	colSleep    = "sleep hours"
	colSymptoms = "symptoms"
	colWeight   = "weight"
	colHeight   = "height"
)

var unitSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// normalizeHeader lower-cases a header, trims it, collapses inner whitespace and drops a
// trailing unit such as "(kg)".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = unitSuffix.ReplaceAllString(h, "")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// BMI returns weight / (height in metres)^2. heightCm must be non-zero.
func BMI(weightKg, heightCm float64) (float64, error) {
	if heightCm == 0 {
		return 0, ErrDivisionGuard
	}
	m := heightCm / 100
	return weightKg / (m * m), nil
}

// OpenDataset reads the CSV dataset at path.
func OpenDataset(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	defer f.Close()

	samples, err := LoadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// LoadDataset parses a population dataset from CSV with a header row.
//
// Required columns are Age, Stress Level, Sleep Hours and Symptoms, plus either BMI or
// both Weight (kg) and Height (cm). Extra columns are ignored.
func LoadDataset(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrDatasetMalformed)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrDatasetMalformed, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	for _, required := range []string{colAge, colStress, colSleep, colSymptoms} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDatasetMalformed, required)
		}
	}
	_, hasBMI := cols[colBMI]
	_, hasWeight := cols[colWeight]
	_, hasHeight := cols[colHeight]
	if !hasBMI && !(hasWeight && hasHeight) {
		return nil, fmt.Errorf("%w: need a BMI column or both Weight and Height", ErrDatasetMalformed)
	}

	var samples []Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatasetMalformed, err)
		}

		num := func(col string) (float64, error) {
			raw := strings.TrimSpace(rec[cols[col]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: line %d: column %q: bad number %q", ErrDatasetMalformed, line, col, raw)
			}
			return v, nil
		}

		var s Sample
		if s.Age, err = num(colAge); err != nil {
			return nil, err
		}
		if s.StressLevel, err = num(colStress); err != nil {
			return nil, err
		}
		if s.SleepHours, err = num(colSleep); err != nil {
			return nil, err
		}
		if hasBMI {
			if s.BMI, err = num(colBMI); err != nil {
				return nil, err
			}
		} else {
			weight, err := num(colWeight)
			if err != nil {
				return nil, err
			}
			height, err := num(colHeight)
			if err != nil {
				return nil, err
			}
			if s.BMI, err = BMI(weight, height); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrDatasetMalformed, line, err)
			}
		}
		s.Symptoms = rec[cols[colSymptoms]]
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrDatasetMalformed)
	}
	return samples, nil
}
