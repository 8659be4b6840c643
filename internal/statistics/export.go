package statistics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/lox/monopolysim/internal/fileutil"
)

// File names written by Export, matching the plotting scripts' inputs.
const (
	PropertyStatsFile = "property_stats.csv"
	DiceStatsFile     = "dice_stats.csv"
)

// TimestampFormat is the layout of the timestamp column.
const TimestampFormat = "2006-01-02 15:04:05"

// RunSnapshot is one run's collector plus the game context the plotting
// scripts group by.
type RunSnapshot struct {
	RunID     string
	Timestamp time.Time // when the run started
	Rounds    int
	Players   int
	Collector *Collector
}

func (r RunSnapshot) prefix() []string {
	return []string{
		r.RunID,
		r.Timestamp.Format(TimestampFormat),
		strconv.Itoa(r.Rounds),
		strconv.Itoa(r.Players),
	}
}

var runColumns = []string{"run_id", "timestamp", "rounds", "players"}

// WriteLandingsCSV writes run_id,timestamp,rounds,players,property_name,count
// rows, one per distinct name in names order.
func WriteLandingsCSV(w io.Writer, names []string, runs []RunSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(slices.Clone(runColumns), "property_name", "count")); err != nil {
		return err
	}
	for _, run := range runs {
		for _, row := range run.Collector.LandingsInOrder(names) {
			record := append(run.prefix(), row.Name, strconv.Itoa(row.Count))
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDiceCSV writes run_id,timestamp,rounds,players,dice1,dice2,sum,count
// rows for all 21 pairs.
func WriteDiceCSV(w io.Writer, runs []RunSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(slices.Clone(runColumns), "dice1", "dice2", "sum", "count")); err != nil {
		return err
	}
	for _, run := range runs {
		for _, row := range run.Collector.SortedDice() {
			record := append(run.prefix(),
				strconv.Itoa(row.Pair.Low),
				strconv.Itoa(row.Pair.High),
				strconv.Itoa(row.Pair.Sum()),
				strconv.Itoa(row.Count),
			)
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes both CSV files into dir, creating it if needed.
func Export(dir string, names []string, runs []RunSnapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	landingsPath := filepath.Join(dir, PropertyStatsFile)
	err := fileutil.WriteAtomic(landingsPath, 0o644, func(w io.Writer) error {
		return WriteLandingsCSV(w, names, runs)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", landingsPath, err)
	}

	dicePath := filepath.Join(dir, DiceStatsFile)
	err = fileutil.WriteAtomic(dicePath, 0o644, func(w io.Writer) error {
		return WriteDiceCSV(w, runs)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", dicePath, err)
	}
	return nil
}
