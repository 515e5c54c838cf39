package exchange

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"

	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange/models"
)

const (
	utf8BOM   = "\ufeff"
	sheetName = "bookings"
)

// RequiredColumns колонки, без которых файл импорта не принимается
var RequiredColumns = []string{"date", "marketName", "vendorId"}

var exportColumns = []string{"date", "marketCity", "marketName", "vendorId", "vendorName"}

// EncodeCSV пишет строки в CSV с BOM и CRLF, чтобы файл открывался в Excel
func EncodeCSV(rows []models.Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		return nil, fmt.Errorf("%w: EncodeCSV - %v", ErrInternal, err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV разбирает файл импорта; BOM в начале файла допускается
func DecodeCSV(data []byte) ([]models.Row, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: file is empty", ErrMalformedFile)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []models.Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	for i := range rows {
		rows[i].Date = strings.TrimSpace(rows[i].Date)
		rows[i].MarketCity = strings.TrimSpace(rows[i].MarketCity)
		rows[i].MarketName = strings.TrimSpace(rows[i].MarketName)
		rows[i].VendorID = strings.TrimSpace(rows[i].VendorID)
		rows[i].VendorName = strings.TrimSpace(rows[i].VendorName)
	}
	return rows, nil
}

// EncodeXLSX пишет те же строки в лист книги Excel
func EncodeXLSX(rows []models.Row) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for col, name := range exportColumns {
		f.SetCellValue(sheetName, cell(col, 1), name)
	}
	for i, r := range rows {
		line := i + 2
		values := []string{r.Date, r.MarketCity, r.MarketName, r.VendorID, r.VendorName}
		for col, v := range values {
			f.SetCellValue(sheetName, cell(col, line), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: EncodeXLSX - %v", ErrInternal, err)
	}
	return buf.Bytes(), nil
}

// cell возвращает адрес ячейки вида "C12"; колонок меньше 26
func cell(col, line int) string {
	return fmt.Sprintf("%c%d", 'A'+col, line)
}
