package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	approvedColor = "#16a34a"
	rejectedColor = "#dc2626"
)

var leaveStatusTmpl = template.Must(template.New("leave_status").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <p>Hello {{.FullName}},</p>
  <p>Your leave request for <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong> has been
    <strong style="color: {{.Color}};">{{.Status}}</strong>.</p>
  <p>Please sign in to the HR dashboard for details.</p>
  <p>Regards,<br>HR Team</p>
</body>
</html>
`))

var payslipTmpl = template.Must(template.New("payslip_available").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <p>Hello {{.FullName}},</p>
  <p>Your payslip for <strong>{{.Period}}</strong> is now available.</p>
  <p>Net salary: <strong>{{.NetSalary}}</strong></p>
  <p>You can download it from the Payslips page of the HR dashboard.</p>
  <p>Regards,<br>HR Team</p>
</body>
</html>
`))

type LeaveStatusData struct {
	FullName  string
	Status    string
	StartDate time.Time
	EndDate   time.Time
}

type PayslipData struct {
	FullName  string
	Month     int
	Year      int
	NetSalary string
}

// LeaveStatusMessage renders the leave decision mail.
func LeaveStatusMessage(to string, d LeaveStatusData) (Message, error) {
	color := rejectedColor
	if d.Status == "Approved" {
		color = approvedColor
	}

	var buf bytes.Buffer
	err := leaveStatusTmpl.Execute(&buf, map[string]string{
		"FullName":  d.FullName,
		"Status":    d.Status,
		"Color":     color,
		"StartDate": d.StartDate.Format("02 January 2006"),
		"EndDate":   d.EndDate.Format("02 January 2006"),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render leave status mail: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Leave request " + d.Status,
		HTML:    buf.String(),
	}, nil
}

// PayslipMessage renders the payslip-available mail.
func PayslipMessage(to string, d PayslipData) (Message, error) {
	period := fmt.Sprintf("%s %d", time.Month(d.Month).String(), d.Year)

	var buf bytes.Buffer
	err := payslipTmpl.Execute(&buf, map[string]string{
		"FullName":  d.FullName,
		"Period":    period,
		"NetSalary": d.NetSalary,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render payslip mail: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Your payslip for " + period + " is available",
		HTML:    buf.String(),
	}, nil
}
