package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/user/refindex_go/internal/parser"
	"github.com/user/refindex_go/internal/series"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
	plotImageName          = "scatter"
)

// ReportOptions configures the PDF report.
type ReportOptions struct {
	ReportID string // generated when empty
	Plot     PlotOptions
}

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	tr          func(string) string // UTF-8 to the core font code page
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageBottom  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageBottom:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["small"] = func() {
		s.pdf.SetFont("Arial", "I", 8)
		s.pdf.SetTextColor(90, 90, 90)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200) // Light grey
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageBottom {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	text = s.tr(text)
	lines := len(s.pdf.SplitLines([]byte(text), pdfContentWidth))
	if lines == 0 {
		lines = 1
	}
	s.checkAddPage(float64(lines) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1 // Small gap after paragraph
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(imageName, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "small", "C")
	}
	s.addSpacer(2)
}

// writeTableHeader draws a header row at the current position.
func (s *pdfStyler) writeTableHeader(headers []string, widths []float64) {
	s.applyStyle("tableHeader")
	sX := pdfMargin
	for i, header := range headers {
		s.pdf.SetXY(sX, s.currentY)
		s.pdf.CellFormat(widths[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
		sX += widths[i]
	}
	s.currentY += s.lineHeight
}

// writeMeasurementTable lists every measurement, repeating the header on
// each new page.
func (s *pdfStyler) writeMeasurementTable(measurements []parser.Measurement) {
	headers := []string{"#", "Wavelength", "Refractive index"}
	colWidthsRel := []float64{0.1, 0.45, 0.45}
	colWidthsAbs := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidthsAbs[i] = rel * pdfContentWidth
	}

	s.checkAddPage(2 * s.lineHeight)
	s.writeTableHeader(headers, colWidthsAbs)

	for i, m := range measurements {
		if s.currentY+s.lineHeight > s.pageBottom {
			s.newPage()
			s.writeTableHeader(headers, colWidthsAbs)
		}
		rowData := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(m.Wavelength, 'g', -1, 64),
			strconv.FormatFloat(m.RefractiveIndex, 'g', -1, 64),
		}

		s.applyStyle("tableCell")
		sX := pdfMargin
		for j, cellData := range rowData {
			s.pdf.SetXY(sX, s.currentY)
			s.pdf.CellFormat(colWidthsAbs[j], s.lineHeight, cellData, "1", 0, "C", false, 0, "")
			sX += colWidthsAbs[j]
		}
		s.currentY += s.lineHeight
	}
}

// BuildPDFReport writes a report for dataset to w. plotPNG is the rendered
// scatter figure; when empty a placeholder line is written instead.
func BuildPDFReport(w io.Writer, dataset *parser.Dataset, plotPNG []byte, opts ReportOptions) error {
	if dataset == nil || len(dataset.Measurements) == 0 {
		return ErrNoMeasurements
	}
	opts.Plot = opts.Plot.withDefaults()
	if opts.ReportID == "" {
		opts.ReportID = uuid.Must(uuid.NewV7()).String()
	}

	pdf := gofpdf.New("L", "mm", "Letter", "") // Landscape, mm, Letter size
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(opts.Plot.Title, true)
	pdf.SetSubject(dataset.Path, true)
	pdf.SetCreator("refindex", true)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph(opts.Plot.Title, "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("Source: %s", dataset.Path), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Report ID: %s", opts.ReportID), "small", "L")
	styler.addSpacer(3)

	meta := dataset.Metadata
	if meta.DataType != "" {
		styler.writeParagraph(fmt.Sprintf("Data type: %s", meta.DataType), "normal", "L")
	}
	if meta.Comments != "" {
		styler.writeParagraph(fmt.Sprintf("Comments: %s", meta.Comments), "normal", "L")
	}
	if meta.References != "" {
		styler.writeParagraph(fmt.Sprintf("References: %s", meta.References), "normal", "L")
	}

	e, err := series.Split(dataset.Measurements).Bounds()
	if err != nil {
		return err
	}
	styler.writeParagraph(fmt.Sprintf("%d measurements; %s %g to %g; %s %g to %g",
		len(dataset.Measurements), opts.Plot.XLabel, e.MinX, e.MaxX, opts.Plot.YLabel, e.MinY, e.MaxY), "normal", "L")
	styler.addSpacer(3)

	imgWidth := pdfContentWidth * 0.8
	imgHeight := imgWidth * float64(opts.Plot.Height/opts.Plot.Width)
	if len(plotPNG) > 0 {
		styler.addImage(plotPNG, plotImageName, imgWidth, imgHeight, opts.Plot.Title)
	} else {
		styler.writeParagraph("Plot not available.", "normal", "L")
	}

	styler.newPage()
	styler.writeParagraph("Measurements", "h2", "L")
	styler.writeMeasurementTable(dataset.Measurements)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}

// BuildPDFReportFile writes the report to path.
func BuildPDFReportFile(path string, dataset *parser.Dataset, plotPNG []byte, opts ReportOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF file: %w", err)
	}
	if err := BuildPDFReport(file, dataset, plotPNG, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
