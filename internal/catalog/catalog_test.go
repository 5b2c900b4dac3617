package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigtools/multilang-service/internal/config"
)

func testClient(serverURL string) *Client {
	c := NewClient(&config.Settings{
		StoreHash:   "testhash",
		AccessToken: "testtoken",
		ChannelID:   1,
		Environment: "production",
	})
	c.baseURL = serverURL
	return c
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func decodeGQL(t *testing.T, r *http.Request) gqlRequest {
	t.Helper()
	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode graphql request: %v", err)
	}
	return req
}

func TestActiveLocalesFiltersActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"data":{"store":{"locales":{"edges":[
			{"node":{"code":"EN","status":"ACTIVE","isDefault":true}},
			{"node":{"code":"es","status":"ACTIVE","isDefault":false}},
			{"node":{"code":"fr","status":"INACTIVE","isDefault":false}}
		]}}}}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	locales, err := c.ActiveLocales(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "es" {
		t.Errorf("expected [en es], got %v", locales)
	}
}

func TestActiveLocalesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := testClient(server.URL)
	locales, err := c.ActiveLocales(context.Background(), 1)
	if err == nil {
		t.Error("expected secondary error signal on upstream failure")
	}
	if locales == nil || len(locales) != 0 {
		t.Errorf("expected empty slice, got %v", locales)
	}
}

func TestActiveLocalesGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":null,"errors":[{"message":"not authorized"}]}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	locales, err := c.ActiveLocales(context.Background(), 1)
	if err == nil {
		t.Error("expected error for graphql-level errors")
	}
	if len(locales) != 0 {
		t.Errorf("expected empty slice, got %v", locales)
	}
}

func productResponse(baseName, baseDesc string, overrideName, overrideDesc *string) string {
	override := map[string]any{"name": overrideName, "description": overrideDesc}
	body, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"store": map[string]any{
				"products": map[string]any{
					"edges": []any{
						map[string]any{"node": map[string]any{
							"id":                 "bc/store/product/7",
							"basicInformation":   map[string]any{"name": baseName, "description": baseDesc},
							"overridesForLocale": map[string]any{"basicInformation": override},
						}},
					},
				},
				"product": map[string]any{
					"images": map[string]any{
						"edges": []any{
							map[string]any{"node": map[string]any{"urlStandard": "https://cdn.example/img1.jpg"}},
						},
					},
				},
			},
		},
	})
	return string(body)
}

func strPtr(s string) *string { return &s }

func TestGetLocalizedContentOverrideNameFallbackDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, productResponse("Base Name", "Base description", strPtr("Nombre"), nil))
	}))
	defer server.Close()

	c := testClient(server.URL)
	results, err := c.GetLocalizedContent(context.Background(), 7, 1, []string{"es"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := results["es"]
	if content.Name == nil || *content.Name != "Nombre" {
		t.Errorf("expected override name, got %v", content.Name)
	}
	if content.Description == nil || *content.Description != "Base description" {
		t.Errorf("expected base description fallback, got %v", content.Description)
	}
	if len(content.Images) != 1 || content.Images[0] != "https://cdn.example/img1.jpg" {
		t.Errorf("images: got %v", content.Images)
	}
}

func TestGetLocalizedContentNoOverrideFallsBackBothFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, productResponse("Base Name", "Base description", nil, nil))
	}))
	defer server.Close()

	c := testClient(server.URL)
	results, err := c.GetLocalizedContent(context.Background(), 7, 1, []string{"de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := results["de"]
	if content.Name == nil || *content.Name != "Base Name" {
		t.Errorf("expected base name fallback, got %v", content.Name)
	}
	if content.Description == nil || *content.Description != "Base description" {
		t.Errorf("expected base description fallback, got %v", content.Description)
	}
}

func TestGetLocalizedContentPerLocaleFailureIsolated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeGQL(t, r)
		if req.Variables["locale"] == "fr" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, productResponse("Base Name", "Base description", nil, nil))
	}))
	defer server.Close()

	c := testClient(server.URL)
	results, err := c.GetLocalizedContent(context.Background(), 7, 1, []string{"es", "fr"})
	if err == nil {
		t.Error("expected joined error for the failed locale")
	}

	if content := results["es"]; content.Name == nil {
		t.Error("es fetch should have succeeded")
	}
	content, ok := results["fr"]
	if !ok {
		t.Fatal("fr must still have an entry")
	}
	if content.Name != nil || content.Description != nil {
		t.Errorf("fr should be a zero record, got %+v", content)
	}
	if content.Images == nil || len(content.Images) != 0 {
		t.Errorf("fr images should be empty, got %v", content.Images)
	}
}

func TestUpdateLocalizedContentSendsMutationVariables(t *testing.T) {
	var got gqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = decodeGQL(t, r)
		io.WriteString(w, `{"data":{"product":{"setProductBasicInformation":{"product":{"id":"bc/store/product/7"}}}}}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	err := c.UpdateLocalizedContent(context.Background(), 7, 3, "ES", "Nombre", "<p>Desc</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input, _ := got.Variables["input"].(map[string]any)
	if input["productId"] != "bc/store/product/7" {
		t.Errorf("productId: got %v", input["productId"])
	}
	localeContext, _ := input["localeContext"].(map[string]any)
	if localeContext["channelId"] != "bc/store/channel/3" {
		t.Errorf("channelId: got %v", localeContext["channelId"])
	}
	if localeContext["locale"] != "es" {
		t.Errorf("locale should be lowercased, got %v", localeContext["locale"])
	}
	data, _ := input["data"].(map[string]any)
	if data["name"] != "Nombre" || data["description"] != "<p>Desc</p>" {
		t.Errorf("data: got %v", data)
	}
}

func TestRemoveOverridesRequiresFields(t *testing.T) {
	c := testClient("http://localhost:0")
	if err := c.RemoveOverrides(context.Background(), 7, 1, "es", nil); err == nil {
		t.Error("expected error for empty field list")
	}
}

func TestRemoveOverridesSendsFieldEnums(t *testing.T) {
	var got gqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = decodeGQL(t, r)
		io.WriteString(w, `{"data":{"product":{"removeProductBasicInformationOverrides":{"product":{"id":"bc/store/product/7"}}}}}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	err := c.RemoveOverrides(context.Background(), 7, 1, "es", []string{FieldProductName, FieldProductDescription})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input, _ := got.Variables["input"].(map[string]any)
	fields, _ := input["overridesToRemove"].([]any)
	if len(fields) != 2 || fields[0] != FieldProductName || fields[1] != FieldProductDescription {
		t.Errorf("overridesToRemove: got %v", fields)
	}
}

func TestListProductsPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/catalog/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.URL.Query().Get("page") {
		case "1":
			io.WriteString(w, `{"data":[
				{"id":1,"name":"One","description":"d1","categories":[10]},
				{"id":2,"name":"Two","description":"d2","categories":[]}
			]}`)
		default:
			io.WriteString(w, `{"data":[]}`)
		}
	}))
	defer server.Close()

	c := testClient(server.URL)
	products, err := c.ListProducts(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Category == nil || *products[0].Category != 10 {
		t.Errorf("first product category: got %v", products[0].Category)
	}
	if products[1].Category != nil {
		t.Errorf("second product should have no category, got %v", products[1].Category)
	}
}

func TestListProductsPageFailureReturnsCollected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			io.WriteString(w, `{"data":[{"id":1,"name":"One","description":"d1"}]}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := testClient(server.URL)
	products, err := c.ListProducts(context.Background(), 1)
	if err == nil {
		t.Error("expected error from failed page")
	}
	if len(products) != 1 {
		t.Errorf("expected the collected first page, got %d products", len(products))
	}
}

func TestStorefrontToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/storefront/api-token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Auth-Token") != "testtoken" {
			t.Errorf("missing auth token header")
		}
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["channel_id"] != float64(1) {
			t.Errorf("channel_id: got %v", payload["channel_id"])
		}
		io.WriteString(w, `{"data":{"token":"jwt-token"}}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	token, err := c.StorefrontToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "jwt-token" {
		t.Errorf("token: got %q", token)
	}
}
