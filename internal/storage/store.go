package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir returns the directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scene      string             `json:"scene"`
	Kind       string             `json:"kind"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Params     dynamo.Params      `json:"params"`
	Steps      int                `json:"steps"`
	Skipped    int                `json:"skipped"`
	Integrator string             `json:"integrator"`
	Nodes      int                `json:"nodes"`
	Springs    int                `json:"springs"`
	Track      []int              `json:"track"`
	Metrics    map[string]float64 `json:"metrics"`
	Recording  string             `json:"recording,omitempty"`
}

// Save writes meta and the sampled trajectories of result to a new run
// directory and returns its id. ID, Timestamp, Steps, Skipped, Track and
// Metrics are filled from result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	}
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Skipped = result.Skipped
	meta.Track = result.Track
	meta.Metrics = result.Metrics

	runDir := s.Dir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"time"}
	for _, idx := range result.Track {
		header = append(header, fmt.Sprintf("n%d_x", idx), fmt.Sprintf("n%d_y", idx), fmt.Sprintf("n%d_z", idx))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, row := range result.Positions {
		rec := make([]string, 0, 1+3*len(row))
		rec = append(rec, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, p := range row {
			for _, v := range p {
				rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads the sampled trajectories back. It returns the sample
// times, the tracked node indices from the header and one row of positions
// per sample.
func (s *Store) LoadStates(runID string) ([]float64, []int, [][]mgl64.Vec3, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), statesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) == 0 {
		return []float64{}, nil, [][]mgl64.Vec3{}, nil
	}

	track, err := parseHeader(records[0])
	if err != nil {
		return nil, nil, nil, err
	}

	times := make([]float64, 0, len(records)-1)
	positions := make([][]mgl64.Vec3, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) != 1+3*len(track) {
			return nil, nil, nil, fmt.Errorf("storage: %s row %d: expected %d fields, got %d", statesFile, line+2, 1+3*len(track), len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("storage: %s row %d: %w", statesFile, line+2, err)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		row := make([]mgl64.Vec3, len(track))
		for k := range row {
			row[k] = mgl64.Vec3{vals[1+3*k], vals[2+3*k], vals[3+3*k]}
		}
		positions = append(positions, row)
	}

	return times, track, positions, nil
}

func parseHeader(header []string) ([]int, error) {
	if len(header) == 0 || header[0] != "time" || (len(header)-1)%3 != 0 {
		return nil, fmt.Errorf("storage: malformed %s header", statesFile)
	}
	track := make([]int, 0, (len(header)-1)/3)
	for i := 1; i < len(header); i += 3 {
		name, ok := strings.CutSuffix(header[i], "_x")
		if !ok || !strings.HasPrefix(name, "n") {
			return nil, fmt.Errorf("storage: malformed column %q", header[i])
		}
		idx, err := strconv.Atoi(name[1:])
		if err != nil {
			return nil, fmt.Errorf("storage: malformed column %q", header[i])
		}
		track = append(track, idx)
	}
	return track, nil
}
