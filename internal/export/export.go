// Package export writes recorded trajectories as JSON documents or CSV
// tables.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/crnsim/internal/crn"
)

// Meta carries the run parameters included in a JSON export.
type Meta struct {
	Network  string  `json:"network"`
	Engine   string  `json:"engine"`
	Dt       float64 `json:"dt"`
	Duration float64 `json:"duration"`
	Seed     int64   `json:"seed"`
}

type document struct {
	Meta
	Points  int         `json:"points"`
	Names   []string    `json:"names"`
	Times   []float64   `json:"times"`
	Species [][]float64 `json:"species"`
}

// ExportJSON writes the run as one indented JSON document.
func ExportJSON(w io.Writer, meta Meta, result *crn.Result) error {
	doc := document{
		Meta:    meta,
		Points:  result.Len(),
		Names:   result.Names,
		Times:   result.Times,
		Species: result.Species,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportCSV writes the run as a CSV table with a time column followed
// by one column per species.
func ExportCSV(w io.Writer, result *crn.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"time"}, result.Names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < result.Len(); i++ {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.Species[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
