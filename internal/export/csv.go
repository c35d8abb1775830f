package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"focusdo/internal/model"
)

const isoLayout = "2006-01-02T15:04:05"

// csvColumns is the fixed export column order; clients parse by position.
var csvColumns = []string{
	"id", "title", "notes", "completed", "priority",
	"due_date", "plan_at", "estimate_minutes", "created_at", "updated_at",
}

// TodosToCSV renders one row per todo with ISO-8601 timestamps and empty
// strings for absent optional dates.
func TodosToCSV(todos []model.Todo) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return nil, err
	}
	for _, t := range todos {
		record := []string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Title,
			t.Notes,
			strconv.FormatBool(t.Completed),
			strconv.Itoa(t.Priority),
			isoOrEmpty(t.DueDate),
			isoOrEmpty(t.PlanAt),
			strconv.Itoa(t.EstimateMinutes),
			t.CreatedAt.Format(isoLayout),
			t.UpdatedAt.Format(isoLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isoOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(isoLayout)
}
