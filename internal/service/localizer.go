package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/bigtools/multilang-service/internal/models"
	"github.com/bigtools/multilang-service/internal/translate"
)

// Error code for a failed base-content read, distinct from backend codes
const codeBaseFetchFailed = "base_fetch_failed"

// LocaleDirectory resolves the active locales of a sales channel
type LocaleDirectory interface {
	ActiveLocales(ctx context.Context, channelID int) ([]string, error)
}

// OverrideStore reads and writes per-locale override content
type OverrideStore interface {
	GetLocalizedContent(ctx context.Context, productID, channelID int, locales []string) (map[string]models.LocalizedContent, error)
	UpdateLocalizedContent(ctx context.Context, productID, channelID int, locale, name, description string) error
	RemoveOverrides(ctx context.Context, productID, channelID int, locale string, fields []string) error
}

// TranslationBackend produces per-locale translations for one product
type TranslationBackend interface {
	Generate(ctx context.Context, req translate.Request) (map[string]models.TranslationEntry, error)
}

// Localizer coordinates locale resolution, base-content reads, translation
// and override writes for batches of products. All collaborators are
// injected; the Localizer keeps no hidden state.
type Localizer struct {
	locales LocaleDirectory
	store   OverrideStore
	backend TranslationBackend

	defaultChannelID int
}

// NewLocalizer creates a Localizer with the given collaborators
func NewLocalizer(locales LocaleDirectory, store OverrideStore, backend TranslationBackend, defaultChannelID int) *Localizer {
	return &Localizer{
		locales:          locales,
		store:            store,
		backend:          backend,
		defaultChannelID: defaultChannelID,
	}
}

// GenerateRequest is one override-generation batch
type GenerateRequest struct {
	IDs           []int    `json:"ids" binding:"required"`
	ChannelID     int      `json:"channel_id"`
	BaseLanguage  string   `json:"base_language"`
	TargetLocales []string `json:"target_locales"`
}

// channel resolves the effective channel for a request
func (l *Localizer) channel(requested int) int {
	if requested > 0 {
		return requested
	}
	return l.defaultChannelID
}

// targetLocales computes the locales to generate for: caller-supplied
// targets when given, the channel's active set otherwise, the base language
// excluded either way.
func (l *Localizer) targetLocales(ctx context.Context, req GenerateRequest, channelID int) []string {
	source := req.TargetLocales
	if len(source) == 0 {
		source, _ = l.locales.ActiveLocales(ctx, channelID)
	}

	targets := make([]string, 0, len(source))
	for _, locale := range source {
		locale = strings.ToLower(locale)
		if locale != req.BaseLanguage {
			targets = append(targets, locale)
		}
	}
	return targets
}

// GenerateOverrides runs the per-product pipeline: read base content,
// generate translations, merge the base language back in, write every
// locale. Failures are isolated per product; the result always carries one
// outcome per requested ID.
func (l *Localizer) GenerateOverrides(ctx context.Context, req GenerateRequest) map[int]models.GenerationOutcome {
	if req.BaseLanguage == "" {
		req.BaseLanguage = "en"
	}
	req.BaseLanguage = strings.ToLower(req.BaseLanguage)

	channelID := l.channel(req.ChannelID)
	targets := l.targetLocales(ctx, req, channelID)

	results := make(map[int]models.GenerationOutcome, len(req.IDs))
	for _, productID := range req.IDs {
		results[productID] = l.generateForProduct(ctx, productID, channelID, req.BaseLanguage, targets)
	}
	return results
}

func (l *Localizer) generateForProduct(ctx context.Context, productID, channelID int, baseLanguage string, targets []string) models.GenerationOutcome {
	baseData, err := l.store.GetLocalizedContent(ctx, productID, channelID, []string{baseLanguage})
	if err != nil {
		log.Printf("[WARN] Base content fetch failed product=%d locale=%s: %v", productID, baseLanguage, err)
		return models.FailedOutcome(codeBaseFetchFailed)
	}

	base := baseData[baseLanguage]
	baseName := stringValue(base.Name)
	baseDescription := stringValue(base.Description)
	if baseName == "" {
		// Known gap: empty base content is translated as-is rather than
		// failing fast, to keep the batch error-contained.
		log.Printf("[WARN] Product %d has no base name for locale %s, translating empty content", productID, baseLanguage)
	}

	translations, err := l.backend.Generate(ctx, translate.Request{
		ProductID:       strconv.Itoa(productID),
		Name:            baseName,
		Features:        baseDescription,
		InputLanguage:   baseLanguage,
		TargetLanguages: targets,
	})
	if err != nil {
		return models.FailedOutcome(translate.ErrorCode(err))
	}

	payload := make(map[string]models.BasicInfo, len(translations)+1)
	for locale, entry := range translations {
		payload[locale] = models.BasicInfo{Name: entry.ProductName, Description: entry.Description}
	}
	// The original base content is the source of truth for its own locale;
	// it overwrites any round-tripped backend entry.
	payload[baseLanguage] = models.BasicInfo{Name: baseName, Description: baseDescription}

	writes := make(map[string]models.WriteResult, len(payload))
	for locale, info := range payload {
		if err := l.store.UpdateLocalizedContent(ctx, productID, channelID, locale, info.Name, info.Description); err != nil {
			log.Printf("[WARN] Override write failed product=%d locale=%s: %v", productID, locale, err)
			writes[locale] = models.WriteResult{Error: err.Error()}
			continue
		}
		writes[locale] = models.WriteResult{OK: true}
	}

	return models.GenerationOutcome{Status: models.OutcomeSuccess, Writes: writes}
}

// ListOverrides flattens each product's effective per-locale content into
// one row per (product, locale) across the channel's active locales.
func (l *Localizer) ListOverrides(ctx context.Context, channelID int, productIDs []int) []models.OverrideRow {
	channelID = l.channel(channelID)
	locales, err := l.locales.ActiveLocales(ctx, channelID)
	if err != nil {
		log.Printf("[WARN] Listing overrides with unresolved locales channel=%d: %v", channelID, err)
	}

	var rows []models.OverrideRow
	for _, productID := range productIDs {
		data, err := l.store.GetLocalizedContent(ctx, productID, channelID, locales)
		if err != nil {
			log.Printf("[WARN] Partial override read product=%d: %v", productID, err)
		}
		for _, locale := range locales {
			content := data[locale]
			rows = append(rows, models.OverrideRow{
				ID:          productID,
				Locale:      locale,
				Name:        content.Name,
				Description: content.Description,
			})
		}
	}
	return rows
}

// UpdateBasicInfo writes caller-supplied content for each given locale and
// reports which locales were updated. Per-locale failures do not block the
// remaining locales.
func (l *Localizer) UpdateBasicInfo(ctx context.Context, productID, channelID int, locales map[string]models.BasicInfo) ([]string, error) {
	channelID = l.channel(channelID)

	updated := make([]string, 0, len(locales))
	var writeErrs []error
	for locale, info := range locales {
		locale = strings.ToLower(locale)
		if err := l.store.UpdateLocalizedContent(ctx, productID, channelID, locale, info.Name, info.Description); err != nil {
			log.Printf("[WARN] Basic info write failed product=%d locale=%s: %v", productID, locale, err)
			writeErrs = append(writeErrs, err)
			continue
		}
		updated = append(updated, locale)
	}
	return updated, errors.Join(writeErrs...)
}

// RemoveOverrideFields clears the named override fields for one locale
func (l *Localizer) RemoveOverrideFields(ctx context.Context, productID, channelID int, locale string, fields []string) error {
	return l.store.RemoveOverrides(ctx, productID, l.channel(channelID), strings.ToLower(locale), fields)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
