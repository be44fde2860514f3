package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/pacer/internal/domain"
)

var csvHeader = []string{
	"ID", "Title", "Estimated (h)", "Deadline", "Deadline time", "Progress (%)",
	"Time spent (h)", "Completed", "Ability", "Remaining (h)", "Open slots", "Safe", "Photos",
}

func ToCSV(w io.Writer, snap domain.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range Records(snap) {
		row := []string{
			r.ID,
			r.Title,
			formatFloat(r.EstimatedHours),
			r.Deadline,
			r.DeadlineTime,
			strconv.Itoa(r.Progress),
			formatFloat(r.TimeSpent),
			strconv.FormatBool(r.Completed),
			formatFloat(r.Ability),
			formatFloat(r.RemainingHours),
			strconv.Itoa(r.OpenSlots),
			strconv.FormatBool(r.Safe),
			strings.Join(r.Photos, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
