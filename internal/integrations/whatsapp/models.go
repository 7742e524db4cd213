package whatsapp

// SendResult результат отправки сообщения через WhatsApp-шлюз
type SendResult struct {
	Success        bool    `json:"success"`
	MessageID      *string `json:"messageId,omitempty"`
	DeliveryStatus *string `json:"deliveryStatus,omitempty"`
	Error          *string `json:"error,omitempty"`
}

// sendRequest тело запроса к шлюзу
type sendRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	QuoteID  string `json:"quoteId"`
	EventDate string `json:"eventDate,omitempty"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
