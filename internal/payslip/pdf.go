package payslip

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	labelWidth = 110.0
	valueWidth = 70.0
	lineHeight = 8.0
)

// RenderPDF lays the payslip out on a single A4 page.
func RenderPDF(p *Payslip, e *employee.Employee) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle("Payslip "+p.Period(), false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, lineHeight, p.Period(), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	department := e.Department
	if department == "" {
		department = "-"
	}
	for _, row := range [][2]string{
		{"Employee", e.FullName},
		{"Job title", orDash(e.JobTitle)},
		{"Department", department},
		{"Pay period", p.Period()},
	} {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, lineHeight, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(labelWidth+valueWidth, lineHeight, title, "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	line := func(label string, amount int64) {
		pdf.CellFormat(labelWidth, lineHeight, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, lineHeight, FormatRupiah(amount), "B", 1, "R", false, 0, "")
	}

	section("Earnings")
	line("Basic salary", p.BasicSalary)
	for _, name := range sortedKeys(p.Details.Allowances) {
		line(name, p.Details.Allowances[name])
	}
	line("Total allowances", p.TotalAllowances)
	pdf.Ln(4)

	section("Deductions")
	for _, name := range sortedKeys(p.Details.Deductions) {
		line(name, p.Details.Deductions[name])
	}
	line("Total deductions", p.TotalDeductions)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(labelWidth, 10, "NET SALARY", "TB", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, 10, FormatRupiah(p.NetSalary), "TB", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated "+p.GeneratedAt.Format("02 Jan 2006 15:04 MST"), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatRupiah renders 5350000 as "Rp 5.350.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	return sign + "Rp " + string(out)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
