package attendance

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var exportHeader = []string{"DATE", "EMPLOYEE NAME", "DEPARTMENT", "CHECK-IN", "CHECK-OUT", "STATUS"}

// WriteCSV renders report rows; times are shown as HH:MM in loc and missing
// ones as "-".
func WriteCSV(w io.Writer, rows []ReportRow, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, row := range rows {
		department := ""
		if row.Department != nil {
			department = *row.Department
		}
		record := []string{
			row.AttendanceDate.Format("2006-01-02"),
			row.FullName,
			department,
			clock(&row.CheckInTime, loc),
			clock(row.CheckOutTime, loc),
			row.Status,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.In(loc).Format("15:04")
}

// ExportFilename names the CSV download after the requested range.
func ExportFilename(startDate, endDate string) string {
	if startDate == "" || endDate == "" {
		return "attendance_report_all.csv"
	}
	return fmt.Sprintf("attendance_report_%s_%s.csv", startDate, endDate)
}
