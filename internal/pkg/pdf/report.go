// Package pdf renders a finished inspection report into a PDF document.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

// page geometry for A4 portrait in millimeters
const (
	pageWidth    = 210.0
	marginLeft   = 10.0
	contentWidth = pageWidth - 2*marginLeft
)

// PhotoImage is one embeddable raster with its pixel dimensions.
type PhotoImage struct {
	Name      string
	ImageType string // "JPG" or "PNG"
	Reader    io.Reader
	Width     int
	Height    int
}

// Render writes the report as a PDF: a header page with the report
// fields, one section per annotated photo, and the signature when the
// report has been signed.
func Render(w io.Writer, report *entity.Report, photos []PhotoImage, signature *PhotoImage) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(report.Title, true)
	p.AddPage()

	p.SetFont("Helvetica", "B", 18)
	p.MultiCell(contentWidth, 9, report.Title, "", "L", false)
	p.Ln(2)

	p.SetFont("Helvetica", "", 11)
	field := func(label, value string) {
		if value == "" {
			return
		}
		p.SetFont("Helvetica", "B", 11)
		p.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
		p.SetFont("Helvetica", "", 11)
		p.MultiCell(contentWidth-35, 6, value, "", "L", false)
	}
	field("Inspector", report.Inspector)
	field("Location", report.Location)
	field("Date", report.CreatedAt.Format("2006-01-02 15:04"))
	field("Status", string(report.Status))

	if report.Notes != "" {
		p.Ln(4)
		p.SetFont("Helvetica", "B", 12)
		p.CellFormat(contentWidth, 6, "Notes", "", 1, "L", false, 0, "")
		p.SetFont("Helvetica", "", 11)
		p.MultiCell(contentWidth, 5.5, report.Notes, "", "L", false)
	}

	for i, photo := range photos {
		p.AddPage()
		p.SetFont("Helvetica", "B", 12)
		p.CellFormat(contentWidth, 6, fmt.Sprintf("Photo %d: %s", i+1, photo.Name), "", 1, "L", false, 0, "")
		p.Ln(2)
		placeImage(p, photo, contentWidth)
	}

	if signature != nil {
		p.Ln(10)
		p.SetFont("Helvetica", "B", 12)
		p.CellFormat(contentWidth, 6, "Signature", "", 1, "L", false, 0, "")
		placeImage(p, *signature, 80)
	}

	return p.Output(w)
}

// placeImage embeds the raster scaled to maxWidth mm, aspect preserved.
func placeImage(p *gofpdf.Fpdf, img PhotoImage, maxWidth float64) {
	opts := gofpdf.ImageOptions{ImageType: img.ImageType, ReadDpi: false}
	p.RegisterImageOptionsReader(img.Name, opts, img.Reader)

	w := maxWidth
	h := 0.0 // gofpdf derives the free dimension from the aspect ratio
	if img.Width > 0 && img.Height > 0 && img.Height > img.Width {
		// portrait photos are bounded by height instead
		w = 0.0
		h = 180.0
	}
	p.ImageOptions(img.Name, marginLeft, p.GetY(), w, h, true, opts, 0, "")
}
