package model

import "time"

// CategoryKind indicates which transaction flows may reference a category.
type CategoryKind string

const (
	// CategoryKindExpense marks categories used by expense transactions.
	CategoryKindExpense CategoryKind = "expense"
	// CategoryKindIncome marks categories used by income transactions.
	CategoryKindIncome CategoryKind = "income"
	// CategoryKindBoth marks categories usable by either flow.
	CategoryKindBoth CategoryKind = "both"
)

// Valid reports whether k is one of the known kinds.
func (k CategoryKind) Valid() bool {
	switch k {
	case CategoryKindExpense, CategoryKindIncome, CategoryKindBoth:
		return true
	}
	return false
}

// Accepts reports whether a transaction with the given flow may use this kind.
func (k CategoryKind) Accepts(flow Flow) bool {
	switch flow {
	case FlowExpense:
		return k == CategoryKindExpense || k == CategoryKindBoth
	case FlowIncome:
		return k == CategoryKindIncome || k == CategoryKindBoth
	default:
		return false
	}
}

// Category is a user-defined tag for transactions.
type Category struct {
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Color     string       `json:"color"`
	Emoji     string       `json:"emoji,omitempty"`
	Kind      CategoryKind `json:"kind"`
}

// CategoryInput holds the caller-supplied fields of a new category.
type CategoryInput struct {
	Name  string       `yaml:"name"`
	Color string       `yaml:"color"`
	Emoji string       `yaml:"emoji"`
	Kind  CategoryKind `yaml:"kind"`
}

// CategoryPatch is a partial update. Nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string
	Color *string
	Emoji *string
	Kind  *CategoryKind
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.Emoji == nil && p.Kind == nil
}

// Apply merges the patch over c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Emoji != nil {
		c.Emoji = *p.Emoji
	}
	if p.Kind != nil {
		c.Kind = *p.Kind
	}
}
