// Package report renders a property's work-order table into a printable
// PDF: landscape letter, fixed column layout, greedy word wrap, manual
// pagination.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"workorders/internal/model"
)

// Page geometry in points. Column offsets and the wrap budget are fixed;
// the layout does not adapt to content.
const (
	leftMargin   = 30.0
	rightMargin  = 30.0
	bottomMargin = 50.0

	titleY      = 50.0
	subtitleY   = 70.0
	titleRuleY  = 85.0
	headerY     = 120.0
	headerRuleY = 135.0
	firstRowY   = 160.0
	contRowY    = 50.0 // first baseline on continuation pages

	colRoom   = 30.0
	colOrder  = 130.0
	colDate   = 380.0
	colStatus = 530.0

	wrapBudget   = 230.0
	lineHeight   = 12.0
	minRowHeight = 20.0
)

var columnHeaders = []struct {
	x     float64
	label string
}{
	{colRoom, "Room"},
	{colOrder, "Work Order"},
	{colDate, "Completion Date"},
	{colStatus, "Status"},
}

// Options configures one render.
type Options struct {
	PropertyName string
	GeneratedAt  time.Time
}

// Render lays out the given work orders into a new PDF document. The caller
// owns the result and is expected to write it out with OutputFileAndClose.
func Render(opts Options, orders []model.WorkOrder) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("L", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(leftMargin, titleY, "Maintenance Report for "+opts.PropertyName)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(leftMargin, subtitleY, "Generated on: "+opts.GeneratedAt.Format("2006-01-02 15:04:05"))
	pdf.Line(leftMargin, titleRuleY, pageWidth-rightMargin, titleRuleY)

	// Column headers appear on the first page only.
	pdf.SetFont("Helvetica", "B", 12)
	for _, h := range columnHeaders {
		pdf.Text(h.x, headerY, h.label)
	}
	pdf.Line(leftMargin, headerRuleY, pageWidth-rightMargin, headerRuleY)

	pdf.SetFont("Helvetica", "", 10)
	y := firstRowY

	for _, order := range orders {
		if y > pageHeight-bottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			y = contRowY
		}

		lines := wrapWords(order.WorkOrder, wrapBudget, pdf.GetStringWidth)

		pdf.Text(colRoom, y, order.RoomNumber)
		for i, line := range lines {
			pdf.Text(colOrder, y+float64(i)*lineHeight, line)
		}
		pdf.Text(colDate, y, order.CompletionDate)
		pdf.Text(colStatus, y, order.Status)

		rowHeight := float64(len(lines)) * lineHeight
		if rowHeight < minRowHeight {
			rowHeight = minRowHeight
		}
		y += rowHeight
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return pdf, nil
}

// wrapWords splits text into lines no wider than budget: words accumulate
// onto the current line until the next word would push it past the budget.
// A single word wider than the budget still gets a line of its own.
func wrapWords(text string, budget float64, width func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 1)
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if width(candidate) > budget {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
