package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravbox/internal/automation"
)

// Store keeps one directory per saved scenario run under baseDir.
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	Final     int                `json:"final_bodies"`
	Removed   int                `json:"removed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series is the per-tick record of a run.
type Series struct {
	Bodies []float64
	Energy []float64
}

func (s *Store) Save(r *automation.Report) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", r.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  r.Name,
		Timestamp: now,
		Seed:      r.Seed,
		Ticks:     r.Ticks,
		Final:     r.Final,
		Removed:   r.Removed,
		Metrics:   r.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "bodies", "kinetic_energy"}); err != nil {
		return "", err
	}
	for i := range r.Bodies {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(r.Bodies[i], 'f', 0, 64),
			strconv.FormatFloat(r.Energy[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns saved runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for i, record := range records[1:] {
		bodies, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		energy, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		series.Bodies = append(series.Bodies, bodies)
		series.Energy = append(series.Energy, energy)
	}

	return series, nil
}
