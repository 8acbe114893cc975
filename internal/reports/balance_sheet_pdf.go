// Package reports renders printable documents.
package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"expense_share/internal/balances"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 8.0
)

type column struct {
	title string
	width float64
}

var (
	ownColumns = []column{
		{"Date", 25}, {"Description", 45}, {"Amount", 28}, {"Split Type", 28}, {"Participants", 54},
	}
	otherColumns = []column{
		{"Paid By", 38}, {"Description", 45}, {"Amount", 28}, {"Split Type", 28}, {"Your Share", 41},
	}
)

// RenderBalanceSheet writes sheet as a one-user PDF statement to w. Amounts
// are prefixed with currency.
func RenderBalanceSheet(w io.Writer, sheet balances.BalanceSheet, generatedAt time.Time, currency string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle("Expense Balance Sheet", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(d decimal.Decimal) string {
		return strings.TrimSpace(currency + " " + d.StringFixed(2))
	}

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, "Expense Balance Sheet", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 9, tr("User: "+sheet.UserName), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 7, "Generated on: "+generatedAt.Format("January 02, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	heading(pdf, "Your Summary")
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetFillColor(211, 211, 211)
	for _, row := range [][2]string{
		{"Total Paid", money(sheet.TotalPaid)},
		{"Total Owed", money(sheet.TotalOwed)},
		{"Net Balance", money(sheet.NetBalance)},
	} {
		pdf.CellFormat(50, 10, row[0], "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 10, tr(row[1]), "1", 1, "C", true, 0, "")
	}
	pdf.Ln(6)

	heading(pdf, "Your Expenses")
	if len(sheet.OwnExpenses) == 0 {
		emptyNote(pdf, "No expenses created by you")
	} else {
		header(pdf, ownColumns)
		for _, e := range sheet.OwnExpenses {
			row(pdf, tr, ownColumns, []string{
				e.Date.Format("2006-01-02"),
				e.Name,
				money(e.Amount),
				string(e.SplitType),
				strings.Join(e.Participants, ", "),
			})
		}
	}
	pdf.Ln(6)

	heading(pdf, "Overall Group Expenses")
	if len(sheet.OthersExpenses) == 0 {
		emptyNote(pdf, "No expenses from others")
	} else {
		header(pdf, otherColumns)
		for _, e := range sheet.OthersExpenses {
			row(pdf, tr, otherColumns, []string{
				e.PaidBy,
				e.Name,
				money(e.Amount),
				string(e.SplitType),
				money(e.YourShare),
			})
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render balance sheet: %w", err)
	}
	return pdf.Output(w)
}

// FileName is the attachment name used for a sheet generated at t.
func FileName(userName string, t time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, userName)
	return fmt.Sprintf("balance_sheet_%s_%s.pdf", name, t.Format("20060102_150405"))
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
}

func emptyNote(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, rowHeight, text, "", 1, "L", false, 0, "")
}

func header(pdf *fpdf.Fpdf, cols []column) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for _, c := range cols {
		pdf.CellFormat(c.width, rowHeight+2, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func row(pdf *fpdf.Fpdf, tr func(string) string, cols []column, values []string) {
	pdf.SetFont(fontFamily, "", 10)
	for i, c := range cols {
		pdf.CellFormat(c.width, rowHeight, fit(pdf, tr(values[i]), c.width-2), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

// fit shortens s with a trailing ".." until it fits in width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"..") > width {
		s = s[:len(s)-1]
	}
	return s + ".."
}
