package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer drops experiment records as CSV files under a timestamped results
// directory.
type Writer struct {
	baseDir string
}

func NewWriter() (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("results", timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "style1", "style2", "winner", "reason", "turns"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			string(r.Style1),
			string(r.Style2),
			strconv.Itoa(r.Winner),
			r.Reason,
			strconv.Itoa(r.Turns),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record %d: %w", r.ID, err)
		}
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "moves.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create moves file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game_id", "turn", "actor", "action", "dao_xing_delta", "balance_delta"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write moves header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.GameID),
			strconv.Itoa(r.Turn),
			strconv.Itoa(r.Actor),
			r.Action,
			strconv.Itoa(r.DaoXingDelta),
			strconv.Itoa(r.BalanceDelta),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record: %w", err)
		}
	}
	return nil
}
