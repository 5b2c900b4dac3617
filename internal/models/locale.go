package models

// LocaleStatus represents the lifecycle state of a storefront locale
type LocaleStatus string

const (
	LocaleStatusActive   LocaleStatus = "ACTIVE"
	LocaleStatusInactive LocaleStatus = "INACTIVE"
)

// Locale represents one storefront locale of a sales channel
type Locale struct {
	Code      string       `json:"code"`
	Status    LocaleStatus `json:"status"`
	IsDefault bool         `json:"isDefault"`
}

// IsActive reports whether the locale participates in synchronization
func (l Locale) IsActive() bool {
	return l.Status == LocaleStatusActive
}
