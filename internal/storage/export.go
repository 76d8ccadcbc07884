package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run    RunMetadata       `json:"run"`
	Series map[string]Floats `json:"series"`
}

// ExportJSON writes the metadata and every recorded series of runID to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:    *meta,
		Series: make(map[string]Floats, len(series.Names)),
	}
	for i, name := range series.Names {
		data.Series[name] = series.Values[i]
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
