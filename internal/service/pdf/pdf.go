package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/service"
	"SentiTrade/pkg/logger"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Arial"
	imageX     = 20.0
	imageW     = 170.0
)

// Writer lays out a models.Report as an A4 portrait PDF.
type Writer struct {
	log *logger.Logger
}

func NewWriter(log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Nop()
	}
	return &Writer{log: log}
}

var _ service.DocumentWriter = (*Writer)(nil)

// Write renders doc to path. Sections whose image is missing are left out
// with a warning.
func (w *Writer) Write(ctx context.Context, path string, doc models.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(doc.Header, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.SetTextColor(44, 62, 80)
		pdf.CellFormat(0, 10, tr(doc.Header), "", 1, "C", false, 0, "")
		pdf.Ln(5)
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, "Page "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	for i, sec := range doc.Sections {
		if sec.Image != "" {
			if _, err := os.Stat(sec.Image); err != nil {
				w.log.Warn("report image missing, page omitted",
					logger.String("image", sec.Image),
					logger.String("title", sec.Title),
				)
				continue
			}
		}

		if sec.NewPage || pdf.PageNo() == 0 {
			pdf.AddPage()
		}
		w.section(pdf, tr, sec)

		if err := pdf.Error(); err != nil {
			return fmt.Errorf("pdf: section %d %q: %w", i, sec.Title, err)
		}
	}
	if pdf.PageNo() == 0 {
		pdf.AddPage()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: write %s: %w", path, err)
	}
	w.log.Info("report written", logger.String("path", path), logger.Int("pages", pdf.PageNo()))
	return nil
}

func (w *Writer) section(pdf *fpdf.Fpdf, tr func(string) string, sec models.ReportSection) {
	switch {
	case sec.Title == "":
	case sec.Banner:
		pdf.SetFont(fontFamily, "B", 14)
		pdf.SetFillColor(52, 152, 219)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(0, 10, tr("  "+sec.Title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	default:
		pdf.SetFont(fontFamily, "B", 20)
		pdf.CellFormat(0, 15, tr(sec.Title), "", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	if sec.Caption != "" {
		pdf.SetFont(fontFamily, "I", 11)
		pdf.MultiCell(0, 6, tr(sec.Caption), "", "L", false)
		pdf.Ln(5)
	}

	if sec.Body != "" {
		renderMarkdown(pdf, tr, []byte(sec.Body))
	}

	if sec.Image != "" {
		pdf.ImageOptions(sec.Image, imageX, pdf.GetY(), imageW, 0, true,
			fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
}
