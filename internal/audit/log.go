package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pathwarden/pathwarden/internal/types"
)

// ScanRecord is one line of the scan history log. It stores counts and the
// skipped-path metadata, never file content.
type ScanRecord struct {
	Timestamp      time.Time           `json:"timestamp"`
	ScanID         string              `json:"scan_id"`
	Root           string              `json:"root"`
	FilesScanned   int                 `json:"files_scanned"`
	SkippedCount   int                 `json:"skipped_count"`
	Inaccessible   int                 `json:"inaccessible"`
	Truncated      bool                `json:"truncated"`
	CategoryCounts map[string]int      `json:"category_counts"`
	Duration       string              `json:"duration"`
	TopSkipped     []types.SkippedFile `json:"top_skipped,omitempty"`
}

type Log struct {
	logPath string
}

func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".pathwarden_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "pathwarden_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// LoadHistory returns past scan records, most recent first. Each line is
// decoded independently; a corrupted line is skipped and loading continues
// with the rest of the log.
func (l *Log) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	sc := bufio.NewScanner(f)
	// records carry up to ten skipped paths; allow long lines
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var record ScanRecord
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogScan appends a record to the history log.
func (l *Log) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}

	// Owner-only permissions; the log names sensitive paths
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateScanRecord summarizes a finished scan for the history log.
func CreateScanRecord(rep types.Report) ScanRecord {
	categoryCounts := make(map[string]int)
	for _, sf := range rep.Skipped {
		categoryCounts[string(sf.Category)]++
	}

	top := rep.Skipped
	if len(top) > 10 {
		top = top[:10]
	}

	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           rep.Root,
		FilesScanned:   rep.FilesScanned,
		SkippedCount:   len(rep.Skipped),
		Inaccessible:   rep.Inaccessible,
		Truncated:      rep.Truncated,
		CategoryCounts: categoryCounts,
		Duration:       rep.Duration.String(),
		TopSkipped:     append([]types.SkippedFile(nil), top...),
	}
}
