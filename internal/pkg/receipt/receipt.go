package receipt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/yigit/volunteerhub/internal/domain"
)

// Data is the content printed on a donation receipt
type Data struct {
	DonationID      int64
	OrderID         string
	DonorName       string
	DonorEmail      string
	Amount          decimal.Decimal
	CampaignTitle   string
	AssociationName string
	Message         string
	Date            time.Time
}

// Number returns the printed receipt number
func (d Data) Number() string {
	return fmt.Sprintf("%06d", d.DonationID)
}

// Filename returns the stored file name of the receipt
func Filename(donationID int64) string {
	return fmt.Sprintf("donation_%d.pdf", donationID)
}

// Generator writes receipts as PDF files in a directory
type Generator struct {
	dir string
}

// NewGenerator creates the receipts directory if needed
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create receipts directory %s: %w", dir, err)
	}
	return &Generator{dir: dir}, nil
}

// Path returns the filesystem path of a receipt file
func (g *Generator) Path(filename string) string {
	return filepath.Join(g.dir, filepath.Base(filename))
}

// Generate writes the receipt of a donation and returns its file name
func (g *Generator) Generate(d Data) (string, error) {
	filename := Filename(d.DonationID)
	f, err := os.Create(g.Path(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file: %w", err)
	}

	if err := Render(f, d); err != nil {
		f.Close()
		_ = os.Remove(g.Path(filename))
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close receipt file: %w", err)
	}
	return filename, nil
}

// Render writes the receipt PDF to w
func Render(w io.Writer, d Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Donation receipt "+d.Number(), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Donation receipt"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr("Receipt no. "+d.Number()), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := [][2]string{
		{"Date", d.Date.Format("02/01/2006")},
		{"Donor", d.DonorName},
		{"Email", d.DonorEmail},
		{"Campaign", d.CampaignTitle},
		{"Association", d.AssociationName},
		{"Amount", domain.FormatAmount(d.Amount) + " " + domain.Currency},
		{"Payment reference", d.OrderID},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, tr(row[0]), "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr(row[1]), "B", 1, "L", false, 0, "")
	}

	if d.Message != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("\""+d.Message+"\""), "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr("Thank you for your support. Keep this receipt for your records."), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	return nil
}
