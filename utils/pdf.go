package utils

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
)

// Datos fiscales del documento
const IvaPorcentaje = 0.21 // 21% de IVA

// DocumentoData datos de una reparación para el PDF de presupuesto o factura.
type DocumentoData struct {
	ReparacionId    uint
	Dispositivo     string
	Estado          string
	FechaEntrada    time.Time
	Precio          float64
	Descripcion     string
	ClienteNombre   string
	ClienteTelefono string
}

// GenerarDocumentoPDF genera el presupuesto o la factura de una reparación.
// tipo: "presupuesto" o "factura".
func GenerarDocumentoPDF(data DocumentoData, tipo string) ([]byte, error) {
	titulo := "PRESUPUESTO"
	subtitulo := "Presupuesto sin compromiso"
	prefijo := "P"
	textoLegal := "Este presupuesto no es vinculante y es válido por 30 días"
	notaIva := "Importe orientativo. El IVA se aplicará en la factura final."
	if tipo == "factura" {
		titulo = "FACTURA"
		subtitulo = "Documento de facturación"
		prefijo = "F"
		textoLegal = "Factura válida según normativa vigente"
		notaIva = "Importe con IVA incluido. Factura válida para uso contable."
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 15, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Cabecera
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(13, 110, 253)
	pdf.Cell(0, 12, "ANDROTECH")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(108, 117, 125)
	pdf.Cell(0, 6, tr("Taller de Reparación"))
	pdf.Ln(8)
	pdf.SetDrawColor(13, 110, 253)
	pdf.SetLineWidth(0.5)
	pdf.Line(12, pdf.GetY(), 198, pdf.GetY())
	pdf.Ln(6)

	// Título y número de documento
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(0, 7, titulo)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(108, 117, 125)
	pdf.Cell(0, 5, tr(subtitulo))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(40, 5, fmt.Sprintf("Nº de %s:", titulo))
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(40, 5, fmt.Sprintf("%s-%05d", prefijo, data.ReparacionId))
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(108, 117, 125)
	pdf.Cell(40, 5, "Fecha:")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(40, 5, time.Now().Format("02/01/2006"))
	pdf.Ln(9)

	// Cliente
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "CLIENTE")
	pdf.Ln(7)
	clienteRow := func(label, valor string) {
		pdf.SetFillColor(241, 243, 245)
		pdf.SetDrawColor(222, 226, 230)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(40, 8, tr(label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(100, 8, tr(valor), "1", 1, "L", false, 0, "")
	}
	clienteRow("Nombre:", data.ClienteNombre)
	clienteRow("Teléfono:", data.ClienteTelefono)
	pdf.Ln(6)

	// Detalles
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, tr("DETALLES DE LA REPARACIÓN"))
	pdf.Ln(7)
	pdf.SetFillColor(13, 110, 253)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 8, "Concepto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Estado", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Fecha Entrada", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Precio", "1", 1, "R", true, 0, "")
	pdf.SetFillColor(241, 243, 245)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 8, tr(data.Dispositivo), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, tr(data.Estado), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, data.FechaEntrada.Format("02/01/2006"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f EUR", data.Precio), "1", 1, "R", true, 0, "")
	pdf.Ln(6)

	if data.Descripcion != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, "NOTAS")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(data.Descripcion), "", "L", false)
		pdf.Ln(4)
	}

	// Resumen económico
	base := data.Precio
	iva := math.Round(base*IvaPorcentaje*100) / 100
	total := math.Round((base+iva)*100) / 100

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, tr("RESUMEN ECONÓMICO"))
	pdf.Ln(7)
	resumenRow := func(concepto, importe string, destacada bool) {
		pdf.SetDrawColor(222, 226, 230)
		if destacada {
			pdf.SetFillColor(241, 243, 245)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(13, 110, 253)
		} else {
			pdf.SetFillColor(255, 255, 255)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(33, 37, 41)
		}
		pdf.CellFormat(90, 8, tr(concepto), "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, importe, "1", 1, "R", true, 0, "")
	}
	pdf.SetFillColor(13, 110, 253)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 8, "Concepto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Importe (EUR)", "1", 1, "R", true, 0, "")
	resumenRow("Base imponible", fmt.Sprintf("%.2f", base), false)
	resumenRow("IVA (21%)", fmt.Sprintf("%.2f", iva), false)
	resumenRow("TOTAL", fmt.Sprintf("%.2f", total), true)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(108, 117, 125)
	pdf.MultiCell(0, 4, tr(notaIva), "", "L", false)
	pdf.Ln(6)

	// Pie
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Cell(0, 4, "Gracias por confiar en ANDROTECH")
	pdf.Ln(4)
	pdf.Cell(0, 4, tr(textoLegal))
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 4, tr("Fecha de generación: "+time.Now().Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
