// Package export renders a kardex as downloadable files. Both formats are
// projections of the same days; no figures are computed here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/pkg/utils"
)

var kardexHeader = []string{"date", "day", "expected", "paid", "balance", "status", "transactions"}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// transactionSummary renders "METHOD amount" pairs in ledger order
func transactionSummary(txs []domain.KardexTransaction) string {
	parts := make([]string, 0, len(txs))
	for _, tx := range txs {
		parts = append(parts, fmt.Sprintf("%s %s", tx.Method, money(tx.Amount)))
	}
	return strings.Join(parts, "; ")
}

func kardexRow(d domain.KardexDay) []string {
	return []string{
		utils.FormatDate(d.Date),
		strconv.Itoa(d.DayNumber),
		money(d.Expected),
		money(d.Paid),
		money(d.BalanceAfter),
		string(d.Status),
		transactionSummary(d.Transactions),
	}
}

// KardexCSV writes one row per junta day
func KardexCSV(w io.Writer, k *domain.Kardex) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(kardexHeader); err != nil {
		return err
	}
	for _, d := range k.Days {
		if err := cw.Write(kardexRow(d)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 24, "L"},
	{"Day", 12, "C"},
	{"Expected", 22, "R"},
	{"Paid", 22, "R"},
	{"Balance", 24, "R"},
	{"Status", 26, "C"},
	{"Transactions", 60, "L"},
}

// KardexPDF writes the statement as an A4 table with a summary block on top
func KardexPDF(w io.Writer, k *domain.Kardex) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Kardex "+k.ParticipantName, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Kardex - "+k.ParticipantName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(k.JuntaName), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	nextTurn := "-"
	if k.NextTurnDate != nil {
		nextTurn = utils.FormatDate(*k.NextTurnDate)
	}
	summary := [][2]string{
		{"Daily commitment", money(k.DailyCommitment)},
		{"Total paid", money(k.TotalPaid)},
		{"Total expected to date", money(k.TotalExpected)},
		{"Debt", money(k.GlobalDebt)},
		{"Projected balance", money(k.ProjectedBalance)},
		{"Compliance", fmt.Sprintf("%d%%", k.ComplianceRate)},
		{"Next turn", nextTurn},
	}
	for _, line := range summary {
		pdf.CellFormat(50, 5, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, line[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	header()
	for _, d := range k.Days {
		row := kardexRow(d)
		fill := d.IsTurn
		if fill {
			pdf.SetFillColor(220, 240, 220)
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(row[i]), "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return err
	}
	return pdf.Error()
}
