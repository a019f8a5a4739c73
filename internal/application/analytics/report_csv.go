package analytics

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
)

// CSVFilename nombre de archivo de la exportación.
const CSVFilename = "reporte_apa.csv"

// CSVHeaders columnas de la exportación, en orden.
var CSVHeaders = []string{"Fecha", "TipoMov", "TipoEntrada", "Trabajador", "Entrada", "Descripcion", "Cantidad", "Motivo"}

// WriteCSV escribe las filas del informe con encabezado, precedidas por el BOM UTF-8.
func WriteCSV(w io.Writer, rows []dto.ReportRow) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Date, r.Kind, r.EntryType, r.Worker, r.EntryID, r.Description, strconv.Itoa(r.Quantity), r.Reason}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
