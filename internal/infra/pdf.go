package infra

// pdf.go — printable cierre de caja report using go-pdf/fpdf.
// A7-size thermal-receipt layout: header, session info, a registered vs.
// counted table per category, and the signed difference in bold.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
)

// GenerarPDFCierre writes the closing report for one session to storagePath and
// returns the absolute path of the generated file.
func GenerarPDFCierre(operador string, cierre *dto.CierreCajaResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("cierre_%s.pdf", cierre.SesionID))

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "SET Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Operador: "+operador, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, time.Now().Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.34
	col2 := contentW * 0.33
	col3 := contentW * 0.33

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Categoria", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Registrado", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 5, "Contado", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	filas := []struct {
		nombre               string
		registrado, contado  decimal.Decimal
	}{
		{"Efectivo", cierre.Registrado.Efectivo, cierre.Contado.Efectivo},
		{"Tarjeta", cierre.Registrado.Tarjeta, cierre.Contado.Tarjeta},
		{"Transferencia", cierre.Registrado.Transferencia, cierre.Contado.Transferencia},
		{"Divisa", cierre.Registrado.Divisa, cierre.Contado.Divisa},
	}
	for _, f := range filas {
		pdf.CellFormat(col1, 4, f.nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, f.registrado.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 4, f.contado.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1+col2, 5, "Diferencia", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, cierre.Diferencia.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
