package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

// ErrRunNotFound is returned when a run id has no directory in the store.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Integrator  string             `json:"integrator"`
	Timestamp   time.Time          `json:"timestamp"`
	Start       float64            `json:"start"`
	Stop        float64            `json:"stop"`
	Points      int                `json:"points"`
	Dt          float64            `json:"dt"`
	Params      map[string]float64 `json:"params,omitempty"`
	InitState   Floats             `json:"init_state"`
	FinalState  Floats             `json:"final_state"`
	Observables []string           `json:"observables"`
	Samples     int                `json:"samples"`
	Elapsed     time.Duration      `json:"elapsed_ns"`
}

// Series is a set of equally long recorded sequences in column order.
type Series struct {
	Names  []string
	Values [][]float64
}

// Column returns the sequence recorded under name.
func (s Series) Column(name string) ([]float64, bool) {
	for i, n := range s.Names {
		if n == name {
			return s.Values[i], true
		}
	}
	return nil, false
}

func (s Series) Len() int {
	if len(s.Values) == 0 {
		return 0
	}
	return len(s.Values[0])
}

// Save writes metadata.json and series.csv under a fresh run id.
func (s *Store) Save(meta RunMetadata, series Series) (string, error) {
	if len(series.Names) != len(series.Values) {
		return "", fmt.Errorf("storage: %d names for %d columns", len(series.Names), len(series.Values))
	}
	n := series.Len()
	for i, col := range series.Values {
		if len(col) != n {
			return "", fmt.Errorf("storage: column %q has %d samples, want %d", series.Names[i], len(col), n)
		}
	}

	runID := fmt.Sprintf("%s_%s", meta.Model, uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Observables = append([]string(nil), series.Names...)
	meta.Samples = n

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, seriesFile), series); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, series Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(series.Names); err != nil {
		return err
	}

	row := make([]string, len(series.Names))
	for i := 0; i < series.Len(); i++ {
		for j, col := range series.Values {
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Series{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return Series{}, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return Series{}, err
	}
	if len(records) == 0 {
		return Series{}, fmt.Errorf("storage: %s has no header", seriesFile)
	}

	header := records[0]
	series := Series{
		Names:  append([]string(nil), header...),
		Values: make([][]float64, len(header)),
	}
	for j := range series.Values {
		series.Values[j] = make([]float64, 0, len(records)-1)
	}

	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Series{}, fmt.Errorf("storage: row %d column %q: %w", i+1, header[j], err)
			}
			series.Values[j] = append(series.Values[j], v)
		}
	}

	return series, nil
}
