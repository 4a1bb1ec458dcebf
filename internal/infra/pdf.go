package infra

import (
	"bytes"
	"fmt"

	"arkos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarReciboPDF renders a thermal-receipt-style PDF for one sale and
// returns it in memory; the handler streams it to the client.
func GenerarReciboPDF(venta *model.Venta) ([]byte, error) {
	// A7 ≈ 74mm × 105mm — close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Arkos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Recibo de Venta"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tr("Cliente: "+venta.Cliente), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.FechaVenta.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tr("Pago: "+venta.MetodoPago+"  ·  "+venta.EstadoVenta), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // combination name
	col2 := contentW * 0.12 // talla
	col3 := contentW * 0.12 // qty
	col4 := contentW * 0.30 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Talla", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range venta.Detalles {
		nombre := ""
		if d.Combinacion != nil {
			nombre = d.Combinacion.Nombre
		}
		if len(nombre) > 18 {
			nombre = nombre[:17] + "…"
		}
		pdf.CellFormat(col1, 5, tr(nombre), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, d.Talla, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, "S/ "+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2+col3, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "S/ "+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if venta.Observaciones != nil && *venta.Observaciones != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.MultiCell(contentW, 4, tr(*venta.Observaciones), "", "L", false)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
