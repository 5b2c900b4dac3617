package catalog

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bigtools/multilang-service/internal/models"
)

type restProduct struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Categories  []int  `json:"categories"`
}

type productListEnvelope struct {
	Data []restProduct `json:"data"`
}

// ListProducts pages through the channel's catalog and returns simplified
// rows. A page-level failure stops pagination and returns what was
// collected so far.
func (c *Client) ListProducts(ctx context.Context, channelID int) ([]models.ProductSummary, error) {
	var products []models.ProductSummary
	page := 1

	for {
		params := url.Values{}
		params.Set("channel_id", strconv.Itoa(channelID))
		params.Set("limit", "250")
		params.Set("page", strconv.Itoa(page))
		params.Set("include", "variants")

		var envelope productListEnvelope
		if err := c.REST(ctx, http.MethodGet, "/catalog/products", params, nil, &envelope); err != nil {
			log.Printf("[WARN] Failed to fetch page %d of products for channel %d: %v", page, channelID, err)
			return products, err
		}
		if len(envelope.Data) == 0 {
			break
		}

		for _, p := range envelope.Data {
			row := models.ProductSummary{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
			}
			if len(p.Categories) > 0 {
				category := p.Categories[0]
				row.Category = &category
			}
			products = append(products, row)
		}
		page++
	}

	log.Printf("Retrieved %d products from channel %d", len(products), channelID)
	return products, nil
}

// ProductIDs returns the IDs of the first page of products, used when a
// caller does not name explicit products.
func (c *Client) ProductIDs(ctx context.Context, channelID, limit int) ([]int, error) {
	params := url.Values{}
	params.Set("channel_id", strconv.Itoa(channelID))
	params.Set("limit", strconv.Itoa(limit))

	var envelope productListEnvelope
	if err := c.REST(ctx, http.MethodGet, "/catalog/products", params, nil, &envelope); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(envelope.Data))
	for _, p := range envelope.Data {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
