package docket

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A4 in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 50.0
	valueX     = margin + 120
)

var companyLines = []string{
	"Irish Metals Recycling",
	"Unit 2, Duleek Business Park",
	"Co. Meath, A92 TK20",
}

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// Compress turns on stream compression. Tests switch it off to inspect text.
	Compress bool
}

// Renderer draws single-page A4 dockets with fpdf core fonts. Output is
// deterministic for a given Data: document dates come from GeneratedAt.
type Renderer struct {
	compress bool
}

// NewRenderer creates a Renderer.
func NewRenderer(opts RendererOptions) *Renderer {
	return &Renderer{compress: opts.Compress}
}

// Render returns the PDF bytes for d.
func (r *Renderer) Render(d Data) ([]byte, error) {
	if d.Job == nil || d.Completion == nil {
		return nil, errors.New("docket requires a job and a completion")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(d.GeneratedAt)
	pdf.SetModificationDate(d.GeneratedAt)
	pdf.SetTitle("Skip Docket "+d.Job.DocketNo, false)
	pdf.SetCreator("Irish Metals Dispatch System", false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	p.header(d)
	p.details(d)
	p.locations(d)
	p.notes(d)
	p.signatures(d)
	p.footer()

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render docket pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write docket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// page tracks the cursor; y grows downwards from the top edge.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (p *page) text(x float64, s string) {
	p.pdf.Text(x, p.y, p.tr(s))
}

func (p *page) font(style string, size float64, gray int) {
	p.pdf.SetFont("Helvetica", style, size)
	p.pdf.SetTextColor(gray, gray, gray)
}

func (p *page) rule(y, width float64) {
	p.pdf.SetDrawColor(204, 204, 204)
	p.pdf.SetLineWidth(width)
	p.pdf.Line(margin, y, pageWidth-margin, y)
}

func (p *page) header(d Data) {
	p.font("", 10, 77)
	p.y = margin + 10
	for _, line := range companyLines {
		p.text(pageWidth-margin-200, line)
		p.y += 14
	}

	p.y = 120
	p.font("B", 24, 26)
	p.text(margin, "SKIP DOCKET")

	p.y += 35
	p.pdf.SetFont("Helvetica", "B", 14)
	p.pdf.SetTextColor(51, 102, 153)
	p.text(margin, "Docket No: "+d.Job.DocketNo)

	p.y += 20
	p.rule(p.y, 1)
	p.y += 40
}

func (p *page) details(d Data) {
	c := d.Completion
	rows := [][2]string{
		{"Customer", d.CustomerName()},
		{"Customer Address", orDash(d.customerAddress())},
		{"Customer Phone", orDash(d.customerPhone())},
		{"Driver", d.DriverName()},
		{"Truck Reg", d.Job.TruckReg},
		{"Job Date", FormatJobDate(d.Job.JobDate)},
		{"Skip Size", orDash(c.SkipSize.Label())},
		{"Action", c.Action.Label()},
		{"Completed", FormatDateTime(c.CompletedTime, d.location())},
	}
	if c.NetWeightKg != nil {
		rows = append(rows, [2]string{"Net Weight", formatFloat(*c.NetWeightKg) + " kg"})
	}
	if c.MaterialType != nil && *c.MaterialType != "" {
		rows = append(rows, [2]string{"Material", *c.MaterialType})
	}

	for _, row := range rows {
		p.font("B", 12, 77)
		p.text(margin, row[0]+":")
		p.font("", 12, 26)
		p.text(valueX, row[1])
		p.y += 28
	}
}

func (p *page) locations(d Data) {
	c := d.Completion
	if c.PickLat != nil && c.PickLng != nil {
		p.y += 10
		p.font("B", 12, 77)
		p.text(margin, "Pick Location (Yard):")
		p.font("", 12, 26)
		p.text(margin+150, formatCoord(*c.PickLat)+", "+formatCoord(*c.PickLng))
		p.y += 20
		p.link("View on Maps: " + MapsLink(*c.PickLat, *c.PickLng))
	}

	if c.DropLat != nil && c.DropLng != nil {
		p.y += 20
		p.font("B", 12, 77)
		p.text(margin, "Drop Location (Site):")
		p.y += 18
		if addr := d.customerAddress(); addr != "" {
			p.font("", 10, 51)
			p.text(margin, "Address: "+addr)
			p.y += 16
		}
		p.font("", 10, 26)
		p.text(margin, "GPS: "+formatCoord(*c.DropLat)+", "+formatCoord(*c.DropLng))
	}

	if c.Lat != nil && c.Lng != nil {
		p.y += 30
		p.font("B", 12, 77)
		p.text(margin, "Job Completion Location:")
		p.y += 18
		p.font("", 10, 26)
		p.text(margin, "GPS: "+formatCoord(*c.Lat)+", "+formatCoord(*c.Lng))
		p.y += 16
		p.link("View on Maps: " + MapsLink(*c.Lat, *c.Lng))
		if c.AccuracyM != nil {
			p.y += 14
			p.font("", 9, 102)
			p.text(margin, "Accuracy: "+formatFloat(*c.AccuracyM)+"m")
		}
	}
}

func (p *page) link(s string) {
	p.pdf.SetFont("Helvetica", "", 9)
	p.pdf.SetTextColor(51, 102, 204)
	p.text(margin, s)
}

func (p *page) notes(d Data) {
	notes := d.Completion.DriverNotes
	if notes == nil || *notes == "" {
		return
	}
	p.y += 35
	p.font("B", 12, 77)
	p.text(margin, "Driver Notes:")
	p.y += 8
	p.font("", 11, 51)
	p.pdf.SetXY(margin, p.y)
	p.pdf.MultiCell(pageWidth-2*margin, 14, p.tr(*notes), "", "L", false)
	p.y = p.pdf.GetY()
}

func (p *page) signatures(d Data) {
	// Keep the signature block clear of the footer however long the notes run.
	p.y = min(p.y+80, pageHeight-110)
	p.font("", 10, 128)
	p.text(margin, "Driver Signature:")
	p.font("B", 10, 51)
	p.text(valueX, d.DriverName())

	p.y += 18
	p.font("", 10, 128)
	p.text(margin, "Customer Signature:")
	sig := ""
	if d.Completion.CustomerSignature != nil {
		sig = *d.Completion.CustomerSignature
	}
	p.font("B", 10, 51)
	p.text(valueX, sig)
}

func (p *page) footer() {
	footerTop := pageHeight - 60
	p.rule(footerTop, 0.5)

	p.font("", 8, 153)
	p.y = footerTop + 15
	p.text(margin, "Generated by Irish Metals Dispatch System")
	p.text(pageWidth-margin-50, "Page 1 of 1")
	p.y += 13
	p.text(margin, "Address: Unit 2, Duleek Business Park, Co. Meath, A92 TK20")
}
