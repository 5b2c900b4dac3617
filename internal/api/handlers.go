package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bigtools/multilang-service/internal/catalog"
	"github.com/bigtools/multilang-service/internal/models"
	"github.com/bigtools/multilang-service/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler exposes the localization service over HTTP
type Handler struct {
	localizer *service.Localizer
	catalog   *catalog.Client
}

// NewHandler creates a new handler instance
func NewHandler(localizer *service.Localizer, catalogClient *catalog.Client) *Handler {
	return &Handler{localizer: localizer, catalog: catalogClient}
}

// channelID reads the channel_id query parameter, falling back to the
// client's default channel.
func (h *Handler) channelID(c *gin.Context) (int, bool) {
	v := c.Query("channel_id")
	if v == "" {
		return h.catalog.ChannelID(), true
	}
	id, err := strconv.Atoi(v)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel_id"})
		return 0, false
	}
	return id, true
}

// parseIDList parses a comma-separated list of product IDs
func parseIDList(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Health handles GET /health by checking locale resolution upstream
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.catalog.ActiveLocales(ctx, h.catalog.ChannelID()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetLocales handles GET /locales
func (h *Handler) GetLocales(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	locales, err := h.catalog.ActiveLocales(ctx, channelID)
	if err != nil {
		// Empty result from a failed upstream call is "no locales
		// resolved", not "zero active locales confirmed".
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve locales"})
		return
	}
	c.JSON(http.StatusOK, locales)
}

// GetProducts handles GET /products
func (h *Handler) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(ctx, channelID)
	if err != nil && len(products) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.ProductSummary{}
	}
	c.JSON(http.StatusOK, products)
}

// GetOverrides handles GET /overrides: flattened per-locale rows for the
// given product IDs, or the first page of products when ids is absent.
func (h *Handler) GetOverrides(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	var productIDs []int
	if raw := c.Query("ids"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids"})
			return
		}
		productIDs = ids
	} else {
		ids, err := h.catalog.ProductIDs(ctx, channelID, 10)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch products"})
			return
		}
		productIDs = ids
	}

	rows := h.localizer.ListOverrides(ctx, channelID, productIDs)
	if rows == nil {
		rows = []models.OverrideRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// productWithOverrides groups one product's per-locale effective content
type productWithOverrides struct {
	ID        int                  `json:"id"`
	Name      *string              `json:"name"`
	Overrides []models.OverrideRow `json:"overrides"`
}

// GetProductsWithOverrides handles GET /products-with-overrides
func (h *Handler) GetProductsWithOverrides(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	var productIDs []int
	if raw := c.Query("ids"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids"})
			return
		}
		productIDs = ids
	} else {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 || limit > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		ids, err := h.catalog.ProductIDs(ctx, channelID, limit)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch products"})
			return
		}
		productIDs = ids
	}

	rows := h.localizer.ListOverrides(ctx, channelID, productIDs)
	grouped := make(map[int][]models.OverrideRow, len(productIDs))
	for _, row := range rows {
		grouped[row.ID] = append(grouped[row.ID], row)
	}

	results := make([]productWithOverrides, 0, len(productIDs))
	for _, id := range productIDs {
		product := productWithOverrides{ID: id, Overrides: grouped[id]}
		if len(product.Overrides) > 0 {
			product.Name = product.Overrides[0].Name
		}
		results = append(results, product)
	}
	c.JSON(http.StatusOK, results)
}

// GenerateOverrides handles POST /generate-overrides. The response is
// always HTTP 200 with a per-product outcome map; callers must inspect
// each entry for failure.
func (h *Handler) GenerateOverrides(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids must not be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Minute)
	defer cancel()

	results := h.localizer.GenerateOverrides(ctx, req)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// updateBasicInfoRequest is the POST /update-basic-info body
type updateBasicInfoRequest struct {
	ProductID int                         `json:"product_id" binding:"required"`
	ChannelID int                         `json:"channel_id"`
	Locales   map[string]models.BasicInfo `json:"locales" binding:"required"`
}

// UpdateBasicInfo handles POST /update-basic-info
func (h *Handler) UpdateBasicInfo(c *gin.Context) {
	var req updateBasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	updated, err := h.localizer.UpdateBasicInfo(ctx, req.ProductID, req.ChannelID, req.Locales)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "partial", "updated": updated, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "updated": updated})
}

// DeleteOverrides handles DELETE /overrides/:id, clearing override fields
// for one locale so reads fall back to base content.
func (h *Handler) DeleteOverrides(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	locale := strings.TrimSpace(c.Query("locale"))
	if locale == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "locale is required"})
		return
	}

	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	fields, err := overrideFields(c.DefaultQuery("fields", "name,description"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := h.localizer.RemoveOverrideFields(ctx, productID, channelID, locale, fields); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to remove overrides"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// overrideFields maps the public field names to the platform's enum names
func overrideFields(raw string) ([]string, error) {
	var fields []string
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "":
		case "name":
			fields = append(fields, catalog.FieldProductName)
		case "description":
			fields = append(fields, catalog.FieldProductDescription)
		default:
			return nil, fmt.Errorf("unknown override field: %s", part)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no override fields given")
	}
	return fields, nil
}
