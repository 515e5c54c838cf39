package models

// Row строка файла обмена бронированиями
// Порядок полей задает порядок колонок
type Row struct {
	Date       string `csv:"date"`
	MarketCity string `csv:"marketCity"`
	MarketName string `csv:"marketName"`
	VendorID   string `csv:"vendorId"`
	VendorName string `csv:"vendorName"`
}

// Format формат выгрузки
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ExportFile готовый файл выгрузки
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
