package models

// LocalizedContent is the effective name/description for one locale after
// fallback resolution: override fields when set, base content otherwise.
// Nil fields mean the locale could not be read (or has no content at all).
type LocalizedContent struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
}

// TranslationEntry is one locale's generated name/description pair. The
// description keeps the backend's markup verbatim; downstream storage
// expects HTML-bearing content.
type TranslationEntry struct {
	ProductName string `json:"product_name"`
	Description string `json:"description"`
}

// BasicInfo is the name/description payload written to a locale override
type BasicInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OverrideRow is one flattened (product, locale) row for list endpoints
type OverrideRow struct {
	ID          int     `json:"id"`
	Locale      string  `json:"locale"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProductSummary is the simplified catalog row returned by GET /products
type ProductSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    *int   `json:"category"`
}
