package export

import (
	"fmt"
	"strings"
	"time"

	"focusdo/internal/model"
)

const icsTimeLayout = "20060102T150405Z"

// TodosToICS renders every todo carrying a due date as a VTODO entry.
// The task style was chosen over plain events so completion state
// survives the export (STATUS COMPLETED / NEEDS-ACTION). UIDs are
// derived from the todo id, so re-importing the feed updates entries
// in place instead of duplicating them.
func TodosToICS(todos []model.Todo) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//focusdo//EN",
		"CALSCALE:GREGORIAN",
	}
	for _, t := range todos {
		if t.DueDate == nil {
			continue
		}
		status := "NEEDS-ACTION"
		if t.Completed {
			status = "COMPLETED"
		}
		lines = append(lines,
			"BEGIN:VTODO",
			fmt.Sprintf("UID:todo-%d@focusdo", t.ID),
			"DTSTAMP:"+icsTime(t.CreatedAt),
			"DUE:"+icsTime(*t.DueDate),
			"SUMMARY:"+t.Title,
			// embedded newlines would break ICS line folding
			"DESCRIPTION:"+strings.ReplaceAll(t.Notes, "\n", " "),
			"STATUS:"+status,
			"END:VTODO",
		)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

func icsTime(t time.Time) string {
	return t.UTC().Format(icsTimeLayout)
}
