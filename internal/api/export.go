package api

import (
	"bytes"        // Buffered export
	"encoding/csv" // CSV writer
	"fmt"          // Header formatting
	"net/http"     // HTTP status codes
	"time"         // File name date

	"finance_tracker/internal/domain"  // Importing domain models
	"finance_tracker/internal/service" // Date layout

	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/xuri/excelize/v2" // XLSX workbooks
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	exportSheet = "Transactions"
	xlsxMIME    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []string{"Date", "Type", "Category", "Amount", "Note"}

// writeExport renders feed in format and sends it as an attachment
func writeExport(c *gin.Context, format string, feed []domain.Entry) error {
	var (
		buf  bytes.Buffer
		mime string
	)
	switch format {
	case formatXLSX:
		f, err := transactionsWorkbook(feed)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.Write(&buf); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		mime = xlsxMIME
	default:
		if err := writeTransactionsCSV(&buf, feed); err != nil {
			return err
		}
		mime = "text/csv; charset=utf-8"
	}
	name := fmt.Sprintf("transactions_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, mime, buf.Bytes())
	return nil
}

// writeTransactionsCSV writes the header row and one row per entry
func writeTransactionsCSV(buf *bytes.Buffer, feed []domain.Entry) error {
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, e := range feed {
		if err := w.Write([]string{
			e.Date.Format(service.DateLayout),
			e.Kind.String(),
			e.Category.Name,
			money(e.Amount),
			e.Note,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// transactionsWorkbook builds a single sheet workbook; amounts are numeric cells
func transactionsWorkbook(feed []domain.Entry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}
	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, e := range feed {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{e.Date.Format(service.DateLayout), e.Kind.String(), e.Category.Name, e.Amount.InexactFloat64(), e.Note}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
