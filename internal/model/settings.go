package model

// SettingsID is the fixed key of the settings singleton.
const SettingsID = "default"

// Theme is a presentation preference passed through unchanged.
type Theme string

// Themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// Month start day bounds. Every month has at least 28 days.
const (
	MinMonthStartDay = 1
	MaxMonthStartDay = 28
)

// Settings is the per-user configuration singleton.
// MonthStartDay defines the day of month on which every monthly window begins.
type Settings struct {
	ID                   string        `json:"id"`
	CurrencySymbol       string        `json:"currencySymbol"`
	DefaultPaymentMethod PaymentMethod `json:"defaultPaymentMethod"`
	AccentColor          string        `json:"accentColor"`
	Theme                Theme         `json:"theme"`
	PasscodeHash         string        `json:"passcodeHash,omitempty"`
	MonthStartDay        int           `json:"monthStartDay"`
	RequirePasscode      bool          `json:"requirePasscode"`
}

// DefaultSettings returns the settings used when none have been stored.
func DefaultSettings() Settings {
	return Settings{
		ID:                   SettingsID,
		CurrencySymbol:       "₹",
		DefaultPaymentMethod: PaymentUPI,
		MonthStartDay:        1,
		AccentColor:          "#FB923C",
		Theme:                ThemeDark,
		RequirePasscode:      false,
	}
}

// EffectiveMonthStartDay returns MonthStartDay, or 1 when it is out of range.
func (s *Settings) EffectiveMonthStartDay() int {
	if s == nil || s.MonthStartDay < MinMonthStartDay || s.MonthStartDay > MaxMonthStartDay {
		return MinMonthStartDay
	}
	return s.MonthStartDay
}

// SettingsPatch is a partial update. Nil fields are left unchanged.
type SettingsPatch struct {
	CurrencySymbol       *string
	DefaultPaymentMethod *PaymentMethod
	MonthStartDay        *int
	AccentColor          *string
	Theme                *Theme
	RequirePasscode      *bool
	PasscodeHash         *string
}

// Apply merges the patch over s. The ID is never changed.
func (p SettingsPatch) Apply(s *Settings) {
	if p.CurrencySymbol != nil {
		s.CurrencySymbol = *p.CurrencySymbol
	}
	if p.DefaultPaymentMethod != nil {
		s.DefaultPaymentMethod = *p.DefaultPaymentMethod
	}
	if p.MonthStartDay != nil {
		s.MonthStartDay = *p.MonthStartDay
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.RequirePasscode != nil {
		s.RequirePasscode = *p.RequirePasscode
	}
	if p.PasscodeHash != nil {
		s.PasscodeHash = *p.PasscodeHash
	}
}
