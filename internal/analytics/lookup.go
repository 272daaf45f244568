package analytics

import "github.com/Veraticus/pocket-ledger/internal/model"

// Display values for transactions whose category no longer exists.
const (
	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#6B7280"
)

// CategoryLookup resolves category IDs to display attributes.
type CategoryLookup struct {
	byID map[string]*model.Category
}

// NewCategoryLookup indexes categories by ID.
func NewCategoryLookup(categories []model.Category) CategoryLookup {
	byID := make(map[string]*model.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	return CategoryLookup{byID: byID}
}

// Resolve returns the name, color, and emoji for id. Unknown IDs get the
// fallback name and color and an empty emoji.
func (l CategoryLookup) Resolve(id string) (name, color, emoji string) {
	if c, ok := l.byID[id]; ok {
		return c.Name, c.Color, c.Emoji
	}
	return UnknownCategoryName, UnknownCategoryColor, ""
}

// Known reports whether id names an existing category.
func (l CategoryLookup) Known(id string) bool {
	_, ok := l.byID[id]
	return ok
}
