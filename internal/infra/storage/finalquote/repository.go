package finalquote

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/pkg/dbmetrics"
	"github.com/m04kA/MUA-QuoteService/pkg/psqlbuilder"
)

// Repository репозиторий документов сметы
// Документ хранится как скалярные колонки (id, статус, контакты) плюс
// JSONB блоки (бронь, сметы, платеж, журнал сообщений)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смет
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var quoteColumns = []string{
	"id",
	"status",
	"contact_name",
	"contact_email",
	"contact_phone",
	"selected_quote",
	"booking",
	"quotes",
	"payment_details",
	"whatsapp_messages",
	"quote_generated_at",
	"created_at",
	"updated_at",
}

// Create сохраняет новую смету
func (r *Repository) Create(ctx context.Context, quote *domain.FinalQuote) (*domain.FinalQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking, quotes, payment, messages, err := marshalDocs(quote)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Insert("final_quotes").
		Columns(
			"id",
			"status",
			"contact_name",
			"contact_email",
			"contact_phone",
			"selected_quote",
			"booking",
			"quotes",
			"payment_details",
			"whatsapp_messages",
			"quote_generated_at",
		).
		Values(
			quote.ID,
			quote.Status,
			quote.Contact.Name,
			quote.Contact.Email,
			quote.Contact.Phone,
			selectedQuoteValue(quote),
			booking,
			quotes,
			payment,
			messages,
			quote.QuoteGeneratedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	quote.CreatedAt = createdAt.Time
	quote.UpdatedAt = updatedAt.Time

	return quote, nil
}

// GetByID получает смету по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.FinalQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(quoteColumns...).
		From("final_quotes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	quote, err := scanQuote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	return quote, nil
}

// ExistsID проверяет занятость идентификатора
// Используется циклом генерации 4-значного id при коллизиях
func (r *Repository) ExistsID(ctx context.Context, id string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("final_quotes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsID - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// Update перезаписывает смету целиком (read-modify-write)
// Конкурентные триггеры разрешаются last-writer-wins на уровне записи
func (r *Repository) Update(ctx context.Context, quote *domain.FinalQuote) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking, quotes, payment, messages, err := marshalDocs(quote)
	if err != nil {
		return fmt.Errorf("%w: Update - %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Update("final_quotes").
		Set("status", quote.Status).
		Set("contact_name", quote.Contact.Name).
		Set("contact_email", quote.Contact.Email).
		Set("contact_phone", quote.Contact.Phone).
		Set("selected_quote", selectedQuoteValue(quote)).
		Set("booking", booking).
		Set("quotes", quotes).
		Set("payment_details", payment).
		Set("whatsapp_messages", messages).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": quote.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrQuoteNotFound
	}

	return nil
}

// ListActive возвращает сметы в нетерминальном для напоминаний состоянии
// (quoted и confirmed) - кандидатов для прохода диспетчера
// Оценка готовности конкретного напоминания выполняется планировщиком
func (r *Repository) ListActive(ctx context.Context) ([]*domain.FinalQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(quoteColumns...).
		From("final_quotes").
		Where(squirrel.Eq{"status": []string{string(domain.StatusQuoted), string(domain.StatusConfirmed)}}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	quotes := make([]*domain.FinalQuote, 0)
	for rows.Next() {
		quote, err := scanQuote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - %v", ErrScanRow, err)
		}
		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return quotes, nil
}

// marshalDocs сериализует JSONB блоки документа
func marshalDocs(quote *domain.FinalQuote) ([]byte, []byte, []byte, []byte, error) {
	booking, err := json.Marshal(toBookingDoc(&quote.Booking))
	if err != nil {
		return nil, nil, nil, nil, err
	}

	quotes, err := json.Marshal(toQuotesDoc(&quote.Quotes))
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var payment []byte
	if doc := toPaymentDoc(quote.PaymentDetails); doc != nil {
		if payment, err = json.Marshal(doc); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	var messages []byte
	if doc := toMessageLogDoc(quote.WhatsappMessages); doc != nil {
		if messages, err = json.Marshal(doc); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	return booking, quotes, payment, messages, nil
}

// scanQuote сканирует одну строку в доменную модель
func scanQuote(scan func(dest ...interface{}) error) (*domain.FinalQuote, error) {
	var (
		quote         domain.FinalQuote
		selectedQuote sql.NullString
		bookingRaw    []byte
		quotesRaw     []byte
		paymentRaw    []byte
		messagesRaw   []byte
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
		generatedAt   time.Time
	)

	err := scan(
		&quote.ID,
		&quote.Status,
		&quote.Contact.Name,
		&quote.Contact.Email,
		&quote.Contact.Phone,
		&selectedQuote,
		&bookingRaw,
		&quotesRaw,
		&paymentRaw,
		&messagesRaw,
		&generatedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if selectedQuote.Valid {
		tier := domain.Tier(selectedQuote.String)
		quote.SelectedQuote = &tier
	}

	var booking bookingDoc
	if err := json.Unmarshal(bookingRaw, &booking); err != nil {
		return nil, fmt.Errorf("%w: booking block: %v", ErrUnmarshal, err)
	}
	if quote.Booking, err = booking.toDomain(); err != nil {
		return nil, fmt.Errorf("%w: booking block: %v", ErrUnmarshal, err)
	}

	var quotes quotesDoc
	if err := json.Unmarshal(quotesRaw, &quotes); err != nil {
		return nil, fmt.Errorf("%w: quotes block: %v", ErrUnmarshal, err)
	}
	quote.Quotes = quotes.toDomain()

	if len(paymentRaw) > 0 {
		var payment paymentDoc
		if err := json.Unmarshal(paymentRaw, &payment); err != nil {
			return nil, fmt.Errorf("%w: payment block: %v", ErrUnmarshal, err)
		}
		quote.PaymentDetails = payment.toDomain()
	}

	if len(messagesRaw) > 0 {
		var messages messageLogDoc
		if err := json.Unmarshal(messagesRaw, &messages); err != nil {
			return nil, fmt.Errorf("%w: whatsapp messages block: %v", ErrUnmarshal, err)
		}
		quote.WhatsappMessages = messages.toDomain()
	}

	quote.QuoteGeneratedAt = generatedAt
	quote.CreatedAt = createdAt.Time
	quote.UpdatedAt = updatedAt.Time

	return &quote, nil
}

// selectedQuoteValue возвращает значение колонки selected_quote
func selectedQuoteValue(quote *domain.FinalQuote) interface{} {
	if quote.SelectedQuote == nil {
		return nil
	}
	return string(*quote.SelectedQuote)
}
