package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteChartCSV writes one row per chart point under a header row.
func WriteChartCSV(w io.Writer, c Chart) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"id", "label", c.SeriesLabel}}
	for _, p := range c.Points {
		rows = append(rows, []string{p.ID, p.Label, strconv.FormatFloat(p.Value, 'f', -1, 64)})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write chart csv: %w", err)
	}
	return nil
}

// WriteTimelineCSV writes completed entries followed by pending records.
func WriteTimelineCSV(w io.Writer, v TimelineView) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"project", "subsystem", "activity", "status", "start", "end", "estimated", "durationDays"}}
	for _, e := range v.Entries {
		duration := ""
		if e.DurationDays != nil {
			duration = strconv.Itoa(*e.DurationDays)
		}
		rows = append(rows, []string{
			e.ProjectName, e.SubsystemName, e.ActivityName, string(e.Progress.Status),
			e.Start.UTC().Format(time.RFC3339), e.End.UTC().Format(time.RFC3339),
			strconv.FormatBool(e.Estimated), duration,
		})
	}
	for _, p := range v.Pending {
		rows = append(rows, []string{
			p.ProjectName, p.SubsystemName, p.ActivityName, string(p.Progress.Status),
			"", "", "", "",
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write timeline csv: %w", err)
	}
	return nil
}
