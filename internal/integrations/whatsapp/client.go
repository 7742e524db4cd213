package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент WhatsApp-шлюза
// Шлюз выполняет фактическую доставку; здесь только транспорт
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendConfirmation отправляет подтверждение брони после оплаты аванса
func (c *Client) SendConfirmation(ctx context.Context, quote *domain.FinalQuote) (*SendResult, error) {
	return c.send(ctx, quote, "confirmation")
}

// SendFinalConfirmation отправляет подтверждение финального платежа
func (c *Client) SendFinalConfirmation(ctx context.Context, quote *domain.FinalQuote) (*SendResult, error) {
	return c.send(ctx, quote, "final-confirmation")
}

// SendRejection отправляет уведомление об отклоненном скриншоте оплаты
func (c *Client) SendRejection(ctx context.Context, quote *domain.FinalQuote) (*SendResult, error) {
	return c.send(ctx, quote, "rejection")
}

// SendReminder отправляет напоминание указанного вида
func (c *Client) SendReminder(ctx context.Context, quote *domain.FinalQuote, kind domain.ReminderKind) (*SendResult, error) {
	return c.send(ctx, quote, string(kind))
}

// send выполняет запрос к шлюзу
func (c *Client) send(ctx context.Context, quote *domain.FinalQuote, kind string) (*SendResult, error) {
	url := fmt.Sprintf("%s/internal/messages", c.baseURL)

	payload := sendRequest{
		Phone:   quote.Contact.Phone,
		Name:    quote.Contact.Name,
		Kind:    kind,
		QuoteID: quote.ID,
	}
	if eventAt, ok := quote.FirstEventAt(); ok {
		payload.EventDate = eventAt.Format(domain.DateFormat)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("WhatsApp gateway unreachable for quote=%s kind=%s: %v", quote.ID, kind, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("WhatsApp message sent: quote=%s kind=%s success=%t", quote.ID, kind, result.Success)
	return &result, nil
}
