package exchange

import "errors"

var (
	// ErrAccessDenied возвращается, когда у продавца нет прав на обмен
	ErrAccessDenied = errors.New("access denied")

	// ErrUnsupportedFormat возвращается для неизвестного формата выгрузки
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrMissingColumns возвращается, когда в заголовке файла нет обязательных колонок
	ErrMissingColumns = errors.New("csv header is missing required columns")

	// ErrMalformedFile возвращается, когда файл не удается разобрать
	ErrMalformedFile = errors.New("malformed csv file")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
