package models

// GeneratedTextResponse ответ с сгенерированным текстом
type GeneratedTextResponse struct {
	Kind    string `json:"kind"` // promo | analysis
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
