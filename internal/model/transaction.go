package model

import "time"

// Flow is the direction of a transaction.
type Flow string

const (
	// FlowExpense decreases the balance.
	FlowExpense Flow = "expense"
	// FlowIncome increases the balance.
	FlowIncome Flow = "income"
	// FlowAdjustment is a manual balance correction. It always adds to the balance.
	FlowAdjustment Flow = "adjustment"
)

// Valid reports whether f is one of the known flows.
func (f Flow) Valid() bool {
	switch f {
	case FlowExpense, FlowIncome, FlowAdjustment:
		return true
	}
	return false
}

// PaymentMethod records how a transaction was paid. Informational only.
type PaymentMethod string

// Payment methods.
const (
	PaymentCash  PaymentMethod = "cash"
	PaymentUPI   PaymentMethod = "upi"
	PaymentCard  PaymentMethod = "card"
	PaymentOther PaymentMethod = "other"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentOther:
		return true
	}
	return false
}

// Transaction is a single logged movement of money.
// Amount is in minor units and never negative; Flow carries the direction.
type Transaction struct {
	HappenedAt    time.Time     `json:"happenedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	ID            string        `json:"id"`
	Flow          Flow          `json:"flow"`
	CategoryID    string        `json:"categoryId,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Reason        string        `json:"reason,omitempty"`
	Amount        int64         `json:"amount"`
}

// HasCategory reports whether the transaction references a category.
func (t *Transaction) HasCategory() bool {
	return t.CategoryID != ""
}

// Money returns the amount as a Money value.
func (t *Transaction) Money() Money {
	return Money(t.Amount)
}

// TransactionInput holds the caller-supplied fields of a new transaction.
type TransactionInput struct {
	HappenedAt    time.Time
	Flow          Flow
	CategoryID    string
	PaymentMethod PaymentMethod
	Reason        string
	Amount        int64
}

// TransactionPatch is a partial update. Nil fields are left unchanged.
// ClearCategory drops the category reference and wins over CategoryID.
type TransactionPatch struct {
	HappenedAt    *time.Time
	Flow          *Flow
	CategoryID    *string
	PaymentMethod *PaymentMethod
	Reason        *string
	Amount        *int64
	ClearCategory bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.HappenedAt == nil && p.Flow == nil && p.CategoryID == nil &&
		p.PaymentMethod == nil && p.Reason == nil && p.Amount == nil && !p.ClearCategory
}

// Apply merges the patch over t. Adjustments never keep a category, whether
// the flow came from the patch or was already stored.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.HappenedAt != nil {
		t.HappenedAt = *p.HappenedAt
	}
	if p.Flow != nil {
		t.Flow = *p.Flow
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.ClearCategory {
		t.CategoryID = ""
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
	if p.Reason != nil {
		t.Reason = *p.Reason
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if t.Flow == FlowAdjustment {
		t.CategoryID = ""
	}
}
