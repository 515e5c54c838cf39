package import_bookings

// Request модель запроса на импорт
type Request struct {
	ActorID string
	Data    []byte // содержимое CSV файла
}

// RowError ошибка отдельной строки файла
type RowError struct {
	Line    int    `json:"line"` // номер строки в файле, заголовок - строка 1
	Message string `json:"message"`
}

// Response итог импорта
type Response struct {
	Imported       int        `json:"imported"`
	Skipped        int        `json:"skipped"`
	CreatedMarkets int        `json:"createdMarkets"`
	Errors         []RowError `json:"errors"`
}
