package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rootfind/rootfind/internal/engine"
)

type RunRecord struct {
	Timestamp   time.Time         `json:"timestamp"`
	RunID       string            `json:"run_id"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Cached      bool              `json:"cached,omitempty"`
	Functions   []FunctionSummary `json:"functions"`
	TotalRoots  int               `json:"total_roots"`
	Degraded    int               `json:"degraded"`
	Evaluations int64             `json:"evaluations"`
	Duration    string            `json:"duration"`
	Error       string            `json:"error,omitempty"`
}

type FunctionSummary struct {
	Name        string    `json:"name"`
	Roots       []float64 `json:"roots"`
	Degraded    int       `json:"degraded"`
	Evaluations int64     `json:"evaluations"`
}

type Log struct {
	logPath string
}

func NewLog(dir string) *Log {
	return &Log{logPath: filepath.Join(dir, ".rootfind_history.jsonl")}
}

// Path returns the location of the history file.
func (a *Log) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Lines that fail to decode
// are skipped.
func (a *Log) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *Log) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}
	return nil
}

// CreateRunRecord summarizes results. runErr, if any, is recorded as text.
func CreateRunRecord(results []engine.Result, fingerprint string, cached bool, duration time.Duration, runErr error) RunRecord {
	rec := RunRecord{
		Timestamp:   time.Now(),
		RunID:       uuid.NewString(),
		Fingerprint: fingerprint,
		Cached:      cached,
		Functions:   make([]FunctionSummary, 0, len(results)),
		Duration:    duration.String(),
	}
	for _, r := range results {
		fs := FunctionSummary{
			Name:        r.Function,
			Roots:       make([]float64, 0, len(r.Roots)),
			Degraded:    r.Degraded(),
			Evaluations: r.Evaluations,
		}
		for _, root := range r.Roots {
			fs.Roots = append(fs.Roots, root.Value)
		}
		rec.Functions = append(rec.Functions, fs)
		rec.TotalRoots += len(r.Roots)
		rec.Degraded += fs.Degraded
		rec.Evaluations += r.Evaluations
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	return rec
}
