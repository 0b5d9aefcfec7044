package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

type transactionResponse struct {
	ID             uuid.UUID        `json:"id"`
	Amount         int64            `json:"amount"`
	Direction      ledger.Direction `json:"direction"`
	Description    string           `json:"description"`
	RawDescription string           `json:"raw_description,omitempty"`
	Date           string           `json:"date"`
	CategoryID     *uuid.UUID       `json:"category_id,omitempty"`
	AccountID      *uuid.UUID       `json:"account_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		Amount:         tx.Amount,
		Direction:      tx.Direction,
		Description:    tx.Description,
		RawDescription: tx.RawDescription,
		Date:           tx.Date.Format(period.DayLayout),
		CategoryID:     tx.CategoryID,
		AccountID:      tx.AccountID,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon_name"`
}

func toCategoryResponse(c *ledger.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon}
}
