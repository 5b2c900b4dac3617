package catalog

import (
	"context"
	"log"
	"strings"

	"github.com/bigtools/multilang-service/internal/models"
)

const localesQuery = `
query GetLocales($channelId: ID!) {
  store {
    locales(input: { channelId: $channelId }) {
      edges {
        node {
          code
          status
          isDefault
        }
      }
    }
  }
}
`

type localesQueryData struct {
	Store struct {
		Locales struct {
			Edges []struct {
				Node models.Locale `json:"node"`
			} `json:"edges"`
		} `json:"locales"`
	} `json:"store"`
}

// Locales fetches all locales configured for a channel
func (c *Client) Locales(ctx context.Context, channelID int) ([]models.Locale, error) {
	variables := map[string]any{
		"channelId": channelResourceID(channelID),
	}

	var data localesQueryData
	if err := c.AdminGraphQL(ctx, localesQuery, variables, &data); err != nil {
		return nil, err
	}

	locales := make([]models.Locale, 0, len(data.Store.Locales.Edges))
	for _, edge := range data.Store.Locales.Edges {
		if edge.Node.Code == "" {
			continue
		}
		locale := edge.Node
		locale.Code = strings.ToLower(locale.Code)
		locales = append(locales, locale)
	}
	return locales, nil
}

// ActiveLocales resolves the channel's ACTIVE locale codes. On upstream
// failure it returns an empty slice so callers can proceed with "no locales
// resolved"; the error is still returned as a secondary signal for callers
// that need to distinguish that from a confirmed-empty set.
func (c *Client) ActiveLocales(ctx context.Context, channelID int) ([]string, error) {
	locales, err := c.Locales(ctx, channelID)
	if err != nil {
		log.Printf("[WARN] Failed to fetch locales for channel %d: %v", channelID, err)
		return []string{}, err
	}

	codes := make([]string, 0, len(locales))
	for _, locale := range locales {
		if locale.IsActive() {
			codes = append(codes, locale.Code)
		}
	}
	return codes, nil
}
