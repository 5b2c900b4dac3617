package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bigtools/multilang-service/internal/models"
)

// Override field enum names accepted by RemoveOverrides
const (
	FieldProductName        = "PRODUCT_NAME_FIELD"
	FieldProductDescription = "PRODUCT_DESCRIPTION_FIELD"
)

const productQuery = `
query($productId: ID!, $channelId: ID!, $locale: String!) {
  store {
    products(filters: { ids: [$productId] }) {
      edges {
        node {
          id
          basicInformation {
            name
            description
          }
          overridesForLocale(localeContext: { channelId: $channelId, locale: $locale }) {
            basicInformation {
              name
              description
            }
          }
        }
      }
    }
    product(id: $productId) {
      images {
        edges {
          node {
            urlStandard
          }
        }
      }
    }
  }
}
`

const updateMutation = `
mutation SetProductBasicInformation(
  $input: SetProductBasicInformationInput!,
  $channelId: ID!,
  $locale: String!
) {
  product {
    setProductBasicInformation(input: $input) {
      product {
        id
        overridesForLocale(localeContext: {
          channelId: $channelId,
          locale: $locale
        }) {
          basicInformation {
            name
            description
          }
        }
      }
    }
  }
}
`

const removeOverridesMutation = `
mutation RemoveProductBasicInformationOverrides(
  $input: RemoveProductBasicInformationOverridesInput!,
  $channelId: ID!,
  $locale: String!
) {
  product {
    removeProductBasicInformationOverrides(input: $input) {
      product {
        id
        overridesForLocale(localeContext: {
          channelId: $channelId,
          locale: $locale
        }) {
          basicInformation {
            name
            description
          }
        }
      }
    }
  }
}
`

type basicInformation struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type productQueryData struct {
	Store struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID                 string           `json:"id"`
					BasicInformation   basicInformation `json:"basicInformation"`
					OverridesForLocale *struct {
						BasicInformation *basicInformation `json:"basicInformation"`
					} `json:"overridesForLocale"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
		Product *struct {
			Images struct {
				Edges []struct {
					Node struct {
						URLStandard string `json:"urlStandard"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"images"`
		} `json:"product"`
	} `json:"store"`
}

// coalesce applies read-time fallback: the override value when it is set
// and non-empty, the base value otherwise.
func coalesce(override, base *string) *string {
	if override != nil && *override != "" {
		return override
	}
	return base
}

// GetLocalizedContent reads a product's effective content for each requested
// locale. One fetch per locale; a failed locale yields a zero record instead
// of aborting the batch. The returned error joins the per-locale failures so
// callers can distinguish "no data" from "fetch failed".
func (c *Client) GetLocalizedContent(ctx context.Context, productID, channelID int, locales []string) (map[string]models.LocalizedContent, error) {
	results := make(map[string]models.LocalizedContent, len(locales))
	var fetchErrs []error

	for _, locale := range locales {
		locale = strings.ToLower(locale)
		variables := map[string]any{
			"productId": productResourceID(productID),
			"channelId": channelResourceID(channelID),
			"locale":    locale,
		}

		var data productQueryData
		if err := c.AdminGraphQL(ctx, productQuery, variables, &data); err != nil {
			log.Printf("[WARN] Localized fetch failed product=%d locale=%s: %v", productID, locale, err)
			results[locale] = models.LocalizedContent{Images: []string{}}
			fetchErrs = append(fetchErrs, fmt.Errorf("locale %s: %w", locale, err))
			continue
		}

		if len(data.Store.Products.Edges) == 0 {
			results[locale] = models.LocalizedContent{Images: []string{}}
			fetchErrs = append(fetchErrs, fmt.Errorf("locale %s: product %d not found", locale, productID))
			continue
		}

		node := data.Store.Products.Edges[0].Node

		images := []string{}
		if data.Store.Product != nil {
			for _, edge := range data.Store.Product.Images.Edges {
				if edge.Node.URLStandard != "" {
					images = append(images, edge.Node.URLStandard)
				}
			}
		}

		base := node.BasicInformation
		override := basicInformation{}
		if node.OverridesForLocale != nil && node.OverridesForLocale.BasicInformation != nil {
			override = *node.OverridesForLocale.BasicInformation
		}

		results[locale] = models.LocalizedContent{
			Name:        coalesce(override.Name, base.Name),
			Description: coalesce(override.Description, base.Description),
			Images:      images,
		}
	}

	return results, errors.Join(fetchErrs...)
}

// UpdateLocalizedContent writes a locale's name/description override
func (c *Client) UpdateLocalizedContent(ctx context.Context, productID, channelID int, locale, name, description string) error {
	locale = strings.ToLower(locale)
	variables := map[string]any{
		"input": map[string]any{
			"productId": productResourceID(productID),
			"localeContext": map[string]any{
				"channelId": channelResourceID(channelID),
				"locale":    locale,
			},
			"data": map[string]any{
				"name":        name,
				"description": description,
			},
		},
		"channelId": channelResourceID(channelID),
		"locale":    locale,
	}

	return c.AdminGraphQL(ctx, updateMutation, variables, nil)
}

// RemoveOverrides clears the named override fields for a (product, locale)
// pair so subsequent reads fall back to base content. Fields must be the
// platform enum names (FieldProductName, FieldProductDescription).
func (c *Client) RemoveOverrides(ctx context.Context, productID, channelID int, locale string, fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("no override fields given")
	}

	locale = strings.ToLower(locale)
	variables := map[string]any{
		"input": map[string]any{
			"productId": productResourceID(productID),
			"localeContext": map[string]any{
				"channelId": channelResourceID(channelID),
				"locale":    locale,
			},
			"overridesToRemove": fields,
		},
		"channelId": channelResourceID(channelID),
		"locale":    locale,
	}

	return c.AdminGraphQL(ctx, removeOverridesMutation, variables, nil)
}
