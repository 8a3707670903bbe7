package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"farmkeep/backend/internal/stats"
)

// A4 in PDF points, with the body flowing between header and footer bands.
const (
	pageW     = 595
	pageH     = 842
	marginX   = 48
	bodyTop   = 734
	bodyFloor = 64
	tableW    = 499
)

var accent = [3]float64{0.14, 0.45, 0.30}

// detail table column widths: Animal, Record Type, Date, Event/Type, Details/Value.
var detailCols = []int{116, 74, 74, 96, 139}

var detailHeaders = []string{"Animal", "Record Type", "Date", "Event/Type", "Details/Value"}

type pdfBuilder struct {
	profile   Profile
	generated string
	pages     []*bytes.Buffer
	cur       *bytes.Buffer
	y         int
}

// BuildPDF renders the category report: page one carries the summary blocks,
// the following pages the date-descending detail table. A category with no
// animals still yields a valid document with empty tables.
func BuildPDF(profile Profile, category string, summary stats.CategoryReport, rows []Row, now time.Time) []byte {
	b := &pdfBuilder{
		profile:   profile,
		generated: now.Format("2006-01-02"),
	}

	b.newPage()
	b.title(fmt.Sprintf("%s Report", titleCase(category)))

	b.summaryTable("Last 30 Days", [][2]string{
		{"Health Events Logged", fmt.Sprintf("%d", summary.HealthEvents30)},
		{"Production Metrics Logged", fmt.Sprintf("%d", summary.ProductionMetrics30)},
	})
	b.summaryTable("Last 365 Days", [][2]string{
		{"Total Animals in Category", fmt.Sprintf("%d", summary.TotalAnimals)},
		{"Animals Added in the Last Year", fmt.Sprintf("%d", summary.AnimalsAddedLastYear)},
		{"Total Health Events", fmt.Sprintf("%d", summary.HealthEvents365)},
		{"Total Production Metrics", fmt.Sprintf("%d", summary.ProductionMetrics365)},
	})

	b.newPage()
	b.detailTable(rowsByDateDesc(rows))

	return b.assemble()
}

func (b *pdfBuilder) newPage() {
	b.cur = &bytes.Buffer{}
	b.pages = append(b.pages, b.cur)
	b.y = bodyTop
	b.header()
}

// header repeats the farm identity and a horizontal rule on every page.
func (b *pdfBuilder) header() {
	farm := b.profile.FarmName
	if strings.TrimSpace(farm) == "" {
		farm = "Farm Report"
	}
	b.text(fontBold, 18, marginX, 798, farm)
	if b.profile.Manager != "" {
		b.text(fontRegular, 10, marginX, 782, b.profile.Manager)
	}
	if b.profile.Location != "" {
		b.text(fontRegular, 10, marginX, 769, b.profile.Location)
	}
	// right-aligned generation date, width estimated at 5pt per glyph
	dateX := pageW - marginX - 5*len(b.generated)
	b.text(fontRegular, 10, dateX, 798, b.generated)
	fmt.Fprintf(b.cur, "0.20 0.22 0.20 rg %d 758 %d 2 re f\n", marginX, tableW)
}

func (b *pdfBuilder) title(s string) {
	b.text(fontBold, 16, marginX, b.y, s)
	b.y -= 30
}

// summaryTable renders a two-column metric/value block with a colored
// header row.
func (b *pdfBuilder) summaryTable(label string, rows [][2]string) {
	const rowH = 20
	b.ensure(rowH*(len(rows)+1) + 16)

	fmt.Fprintf(b.cur, "%.2f %.2f %.2f rg %d %d %d %d re f\n", accent[0], accent[1], accent[2], marginX, b.y-rowH+4, tableW, rowH)
	b.colorText(fontBold, 11, marginX+8, b.y-10, "1 1 1", label)
	b.y -= rowH

	for i, r := range rows {
		if i%2 == 1 {
			fmt.Fprintf(b.cur, "0.96 0.95 0.92 rg %d %d %d %d re f\n", marginX, b.y-rowH+4, tableW, rowH)
		}
		b.text(fontRegular, 10, marginX+8, b.y-10, r[0])
		b.text(fontRegular, 10, marginX+300, b.y-10, r[1])
		fmt.Fprintf(b.cur, "0.86 0.84 0.79 RG 0.4 w %d %d %d %d re S\n", marginX, b.y-rowH+4, tableW, rowH)
		b.y -= rowH
	}
	b.y -= 16
}

func (b *pdfBuilder) detailTable(rows []Row) {
	b.detailHeaderRow()
	if len(rows) == 0 {
		b.ensure(18)
		b.text(fontRegular, 9, marginX+8, b.y-8, "No records for this category.")
		b.y -= 18
		return
	}
	for i, r := range rows {
		const rowH = 18
		if b.y-rowH < bodyFloor {
			b.newPage()
			b.detailHeaderRow()
		}
		if i%2 == 1 {
			fmt.Fprintf(b.cur, "0.97 0.96 0.93 rg %d %d %d %d re f\n", marginX, b.y-rowH+4, tableW, rowH)
		}
		cells := []string{r.AnimalName, r.RecordType, r.Date, r.Event, r.Value}
		x := marginX + 6
		for c, cell := range cells {
			maxChars := (detailCols[c] - 8) / 4
			b.text(fontRegular, 8, x, b.y-8, shorten(cell, maxChars))
			x += detailCols[c]
		}
		b.y -= rowH
	}
}

func (b *pdfBuilder) detailHeaderRow() {
	const rowH = 20
	fmt.Fprintf(b.cur, "%.2f %.2f %.2f rg %d %d %d %d re f\n", accent[0], accent[1], accent[2], marginX, b.y-rowH+4, tableW, rowH)
	x := marginX + 6
	for c, h := range detailHeaders {
		b.colorText(fontBold, 9, x, b.y-10, "1 1 1", h)
		x += detailCols[c]
	}
	b.y -= rowH
}

func (b *pdfBuilder) ensure(h int) {
	if b.y-h < bodyFloor {
		b.newPage()
	}
}

const (
	fontRegular = "/F1"
	fontBold    = "/F2"
)

func (b *pdfBuilder) text(font string, size, x, y int, s string) {
	b.colorText(font, size, x, y, "0.18 0.20 0.18", s)
}

func (b *pdfBuilder) colorText(font string, size, x, y int, rgb, s string) {
	fmt.Fprintf(b.cur, "%s rg BT %s %d Tf %d %d Td (%s) Tj ET\n", rgb, font, size, x, y, pdfEscape(s))
}

// assemble stamps the page footers, then serializes the object graph:
// catalog, page tree, one page+content pair per page, and the two fonts.
func (b *pdfBuilder) assemble() []byte {
	total := len(b.pages)
	for i, page := range b.pages {
		footer := fmt.Sprintf("Page %d of %d", i+1, total)
		fmt.Fprintf(page, "0.30 0.32 0.30 rg BT %s 9 Tf %d 40 Td (%s) Tj ET\n", fontRegular, pageW/2-24, pdfEscape(footer))
	}

	fontRegularObj := 3 + 2*total
	fontBoldObj := 4 + 2*total

	kids := make([]string, 0, total)
	for i := range b.pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), total),
	}
	for i, page := range b.pages {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R /F2 %d 0 R >> >> >>",
			pageW, pageH, 4+2*i, fontRegularObj, fontBoldObj))
		stream := page.String()
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream))
	}
	objects = append(objects,
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>",
	)

	var body bytes.Buffer
	offsets := make([]int, len(objects)+1)
	body.WriteString("%PDF-1.4\n")
	for i, obj := range objects {
		offsets[i+1] = body.Len()
		fmt.Fprintf(&body, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := body.Len()
	fmt.Fprintf(&body, "xref\n0 %d\n", len(objects)+1)
	body.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&body, "%010d 00000 n \n", offsets[i])
	}
	body.WriteString("trailer\n")
	fmt.Fprintf(&body, "<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	body.WriteString("startxref\n")
	fmt.Fprintf(&body, "%d\n", xrefStart)
	body.WriteString("%%EOF")
	return body.Bytes()
}

func pdfEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}

func shorten(s string, max int) string {
	v := strings.TrimSpace(s)
	if max <= 3 || len(v) <= max {
		return v
	}
	return v[:max-3] + "..."
}

func titleCase(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return "Livestock"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
