package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const GameRecordsFile = "game_records.csv"

type GameRecord struct {
	Room       uint32
	Name       string
	Kind       string
	Difficulty string
	GameMetric
}

// Writer appends finished games to game_records.csv in its directory.
type Writer struct {
	mu   sync.Mutex
	path string
}

func NewWriter(baseDir string) (*Writer, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		path: filepath.Join(baseDir, GameRecordsFile),
	}, nil
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	if len(records) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open game records file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat game records file: %w", err)
	}

	writer := csv.NewWriter(f)

	// Header goes in once, when the file is new
	if info.Size() == 0 {
		header := []string{"room", "name", "kind", "difficulty", "winner", "start_time", "end_time", "duration", "moves"}
		err = writer.Write(header)
		if err != nil {
			return fmt.Errorf("failed to write game records header: %w", err)
		}
	}

	for _, record := range records {
		row := []string{
			strconv.FormatUint(uint64(record.Room), 10),
			record.Name,
			record.Kind,
			record.Difficulty,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush game records: %w", err)
	}
	return nil
}
