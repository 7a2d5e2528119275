// Package dltreport renders a PDF summary of a parsed capture file plus an
// optional QR code encoding the source file's SHA-256, for operators who
// want a shareable artifact alongside the raw decode.
//
// Adapted from the teacher's internal/report/pdf.go SaveAcceptancePDF: same
// gofpdf section layout (title, summary, matrix, findings), repurposed
// from acceptance-rule findings to DLT corruption markers.
package dltreport

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"example.com/dltrace/dltfile"
	"example.com/dltrace/internal/record"
)

// Options configures a report run.
type Options struct {
	// OutputPath is where the PDF is written.
	OutputPath string
	// EmbedQR, when true, appends a QR code page encoding the source
	// file's SHA-256.
	EmbedQR bool
	// QRSize is the QR code's pixel dimension; 0 means 128.
	QRSize int
}

// Generate renders f's summary and record vector into a PDF at
// opts.OutputPath. sourcePath is the capture file f was parsed from, used
// only to compute the QR code hash when opts.EmbedQR is set.
func Generate(f *dltfile.File, sourcePath string, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("DLT Decode Report", false)
	pdf.SetAuthor("dltrace", false)
	pdf.SetCreator("dltrace", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	summary := f.Summary()

	addTitle(pdf, "DLT Decode Report")
	addSummarySection(pdf, summary)
	addMatrixSection(pdf, summary)
	addFindingsSection(pdf, f)

	if opts.EmbedQR {
		if err := addQRSection(pdf, sourcePath, opts.QRSize); err != nil {
			return err
		}
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(opts.OutputPath)
}

func addTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addSummarySection(pdf *gofpdf.Fpdf, s dltfile.Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: "Total Records", value: strconv.Itoa(s.TotalRecords)},
		{label: "Corruption Markers", value: strconv.Itoa(s.CorruptionMarkers)},
		{label: "Distinct ECUs", value: strconv.Itoa(len(s.Ecus))},
		{label: "Distinct APIDs", value: strconv.Itoa(len(s.Apids))},
		{label: "Distinct CTIDs", value: strconv.Itoa(len(s.Ctids))},
	}
	for _, item := range items {
		pdf.CellFormat(55, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addMatrixSection(pdf *gofpdf.Fpdf, s dltfile.Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Type / Subtype Matrix")
	pdf.Ln(9)

	headers := []string{"Type", "Subtype", "Count"}
	widths := []float64{60, 60, 40}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	keys := make([]dltfile.TypeSubtype, 0, len(s.ByTypeSubtype))
	for k := range s.ByTypeSubtype {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Subtype < keys[j].Subtype
	})

	pdf.SetFont("Helvetica", "", 9)
	if len(keys) == 0 {
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, "No decoded messages.", "1", 1, "L", false, 0, "")
	}
	for _, k := range keys {
		pdf.CellFormat(widths[0], 6, typeLabel(k.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(int(k.Subtype)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, strconv.Itoa(s.ByTypeSubtype[k]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addFindingsSection(pdf *gofpdf.Fpdf, f *dltfile.File) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Corruption Findings")
	pdf.Ln(9)

	found := false
	for i := 0; i < f.RecordsNum(); i++ {
		rec, ok := f.GetRecord(i)
		if !ok || !rec.IsCorrupted() {
			continue
		}
		found = true
		pdf.SetFont("Helvetica", "B", 10)
		header := fmt.Sprintf("offset %d", rec.StartOffset())
		pdf.MultiCell(0, 5, header, "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, rec.CorruptionCause(), "", "L", false)
		pdf.Ln(2)
	}
	if !found {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No corruption markers recorded.", "", "L", false)
	}
}

func addQRSection(pdf *gofpdf.Fpdf, sourcePath string, size int) error {
	hash, err := sha256OfFile(sourcePath)
	if err != nil {
		return err
	}
	png, err := hashToQR(hash, size)
	if err != nil {
		return err
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Source File Hash")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, "SHA-256: "+hash, "", "L", false)
	pdf.Ln(4)

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr-hash", opt, bytesReader(png))
	pdf.ImageOptions("qr-hash", 15, pdf.GetY(), 40, 40, false, opt, 0, "")
	return nil
}

func typeLabel(t uint8) string {
	switch t {
	case record.TypeLog:
		return "Log"
	case record.TypeAppTrace:
		return "AppTrace"
	case record.TypeNwTrace:
		return "NwTrace"
	case record.TypeControl:
		return "Control"
	default:
		return fmt.Sprintf("type(%d)", t)
	}
}
