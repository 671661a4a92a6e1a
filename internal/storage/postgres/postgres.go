// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-advisor/internal/domain"
	"card-advisor/internal/storage"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

var (
	_ storage.CardStorage     = (*Storage)(nil)
	_ storage.MerchantStorage = (*Storage)(nil)
)

// sanitizeString очищает строку от невидимых и проблемных символов
func sanitizeString(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			result = append(result, ' ')
		case unicode.IsPrint(r):
			result = append(result, r)
		}
	}
	return strings.Join(strings.Fields(string(result)), " ")
}

// === CardStorage ===

const cardColumns = `id, name, current_balance, credit_limit, apr,
	statement_close_day, payment_due_day, grace_period_days, reward_table`

func (s *Storage) ListCards(ctx context.Context, userID int64) ([]domain.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		card.UserID = userID
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return cards, nil
}

func (s *Storage) GetCard(ctx context.Context, userID int64, cardID string) (*domain.Card, error) {
	id, err := uuid.Parse(cardID)
	if err != nil {
		return nil, nil
	}
	row := s.db.QueryRow(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	card.UserID = userID
	return &card, nil
}

// SaveCard inserts or updates a card. A card without id gets a new one.
func (s *Storage) SaveCard(ctx context.Context, userID int64, card domain.Card) (domain.Card, error) {
	card.Name = sanitizeString(card.Name)
	if card.Name == "" {
		return domain.Card{}, fmt.Errorf("card name cannot be empty")
	}

	id := uuid.New()
	if card.ID != "" {
		parsed, err := uuid.Parse(card.ID)
		if err != nil {
			return domain.Card{}, fmt.Errorf("invalid card id %q: %w", card.ID, err)
		}
		id = parsed
	}

	rewards := card.Rewards
	if rewards == nil {
		rewards = domain.RewardTable{}
	}
	table, err := json.Marshal(rewards)
	if err != nil {
		return domain.Card{}, fmt.Errorf("encode reward table: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO cards (id, user_id, name, current_balance, credit_limit, apr,
			statement_close_day, payment_due_day, grace_period_days, reward_table)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			current_balance = EXCLUDED.current_balance,
			credit_limit = EXCLUDED.credit_limit,
			apr = EXCLUDED.apr,
			statement_close_day = EXCLUDED.statement_close_day,
			payment_due_day = EXCLUDED.payment_due_day,
			grace_period_days = EXCLUDED.grace_period_days,
			reward_table = EXCLUDED.reward_table,
			updated_at = NOW()
		WHERE cards.user_id = EXCLUDED.user_id
	`, id, userID, card.Name, card.Balance, card.CreditLimit, card.APR,
		card.StatementCloseDay, card.PaymentDueDay, card.GracePeriodDays, table)
	if err != nil {
		return domain.Card{}, fmt.Errorf("save card: %w", err)
	}
	// conflict on another user's card
	if tag.RowsAffected() == 0 {
		return domain.Card{}, storage.ErrNotFound
	}

	card.ID = id.String()
	card.UserID = userID
	card.Rewards = rewards
	slog.Debug("SaveCard completed", "user_id", userID, "card_id", card.ID)
	return card, nil
}

func (s *Storage) DeleteCard(ctx context.Context, userID int64, cardID string) error {
	id, err := uuid.Parse(cardID)
	if err != nil {
		return storage.ErrNotFound
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM cards WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (domain.Card, error) {
	var (
		card  domain.Card
		id    uuid.UUID
		table []byte
	)
	err := row.Scan(&id, &card.Name, &card.Balance, &card.CreditLimit, &card.APR,
		&card.StatementCloseDay, &card.PaymentDueDay, &card.GracePeriodDays, &table)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Card{}, err
		}
		return domain.Card{}, fmt.Errorf("scan card: %w", err)
	}
	card.ID = id.String()
	card.Rewards = decodeRewardTable(table)
	return card, nil
}

// decodeRewardTable never fails: a table that is not a JSON object is kept as
// an invalid default entry so scoring can warn about it.
func decodeRewardTable(raw []byte) domain.RewardTable {
	if len(raw) == 0 {
		return domain.RewardTable{}
	}
	var t domain.RewardTable
	if err := json.Unmarshal(raw, &t); err != nil {
		slog.Debug("reward table is not an object", "error", err)
		return domain.InvalidRewardTable(raw)
	}
	if t == nil {
		return domain.RewardTable{}
	}
	return t
}

// === MerchantStorage ===

func (s *Storage) ListMerchants(ctx context.Context) ([]domain.KnownMerchant, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, category_id, confidence
		FROM known_merchants
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query merchants: %w", err)
	}
	defer rows.Close()

	var out []domain.KnownMerchant
	for rows.Next() {
		var m domain.KnownMerchant
		if err := rows.Scan(&m.Name, &m.CategoryID, &m.Confidence); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Storage) UpsertMerchant(ctx context.Context, m domain.KnownMerchant) error {
	name := sanitizeString(m.Name)
	if name == "" {
		return fmt.Errorf("merchant name cannot be empty")
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO known_merchants (name, category_id, confidence)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			confidence = EXCLUDED.confidence
	`, name, m.CategoryID, m.Confidence)
	if err != nil {
		return fmt.Errorf("upsert merchant %q: %w", name, err)
	}
	return nil
}
