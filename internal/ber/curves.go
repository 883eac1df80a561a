package ber

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Curve is one result column of a sweep CSV, indexed by Eb/N0.
type Curve struct {
	Name   string
	EbN0DB []float64
	Values []float64
}

// ReadCurves loads every column after EbN0_dB of a CSV written by CSVSink.
func ReadCurves(path string) ([]Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no header in %s", path)
	}
	head := recs[0]
	if len(head) < 2 || strings.TrimSpace(head[0]) != "EbN0_dB" {
		return nil, fmt.Errorf("unexpected header in %s: %v", path, head)
	}
	curves := make([]Curve, len(head)-1)
	for i := range curves {
		curves[i].Name = strings.TrimSpace(head[i+1])
	}
	for line, rec := range recs[1:] {
		if len(rec) != len(head) {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line+2, err)
		}
		for i := range curves {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line+2, err)
			}
			curves[i].EbN0DB = append(curves[i].EbN0DB, x)
			curves[i].Values = append(curves[i].Values, v)
		}
	}
	return curves, nil
}

// EbN0At returns the Eb/N0 at which the curve first drops to target,
// interpolating linearly in log10 of the error rate. ok is false when the
// curve never gets there.
func (c Curve) EbN0At(target float64) (db float64, ok bool) {
	for i, v := range c.Values {
		if v > target {
			continue
		}
		if i == 0 || v <= 0 || target <= 0 {
			return c.EbN0DB[i], true
		}
		la, lb, lt := math.Log10(c.Values[i-1]), math.Log10(v), math.Log10(target)
		frac := (la - lt) / (la - lb)
		return c.EbN0DB[i-1] + frac*(c.EbN0DB[i]-c.EbN0DB[i-1]), true
	}
	return 0, false
}
