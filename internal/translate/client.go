package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/bigtools/multilang-service/internal/models"
)

const (
	defaultEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// Rate-limit retry policy: 1 initial attempt + maxRetries retries,
	// delay = baseBackoff * 2^attempt + random(0, 1s).
	maxRetries  = 5
	baseBackoff = time.Second
)

// Request carries one product's translation job
type Request struct {
	ProductID       string
	Name            string
	Features        string
	InputLanguage   string
	TargetLanguages []string
	// DescriptionHTML switches the prompt to translation mode when set
	DescriptionHTML string
}

// Backend calls the generative-language API and parses its segmented output
type Backend struct {
	apiKey     string
	modelID    string
	httpClient *http.Client

	// endpoint and sleep exist so tests can point at a local server and
	// observe the backoff schedule without waiting on it
	endpoint string
	sleep    func(time.Duration)
}

// NewBackend creates a generation-backend client. Empty credentials are
// allowed; Generate reports missing_creds per call.
func NewBackend(apiKey, modelID string) *Backend {
	return &Backend{
		apiKey:  apiKey,
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sleep: time.Sleep,
	}
}

type contentPart struct {
	Text string `json:"text"`
}

type promptContent struct {
	Parts []contentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []promptContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content promptContent `json:"content"`
	} `json:"candidates"`
}

func newGenerateContentRequest(prompt string) generateContentRequest {
	return generateContentRequest{
		Contents: []promptContent{{Parts: []contentPart{{Text: prompt}}}},
	}
}

// backoffDelay computes the retry delay for an attempt, with jitter
func backoffDelay(attempt int) time.Duration {
	return baseBackoff*time.Duration(1<<attempt) + time.Duration(rand.Int63n(int64(time.Second)))
}

// postWithRetries posts the payload, retrying rate-limit responses up to
// maxRetries times. Any other non-2xx status fails immediately; exhausting
// the bound surfaces the last rate-limit response as a failure.
func (b *Backend) postWithRetries(ctx context.Context, url string, payload []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, &BackendError{Code: CodeTransportError, Err: err}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := b.httpClient.Do(req)
		if err != nil {
			return nil, &BackendError{Code: CodeTransportError, Err: err}
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, &BackendError{Code: CodeTransportError, Err: fmt.Errorf("status %d", resp.StatusCode)}
			}
			if readErr != nil {
				return nil, &BackendError{Code: CodeTransportError, Err: readErr}
			}
			return body, nil
		}
		resp.Body.Close()

		if attempt == maxRetries {
			return nil, &BackendError{Code: CodeTransportError, Err: fmt.Errorf("rate limited after %d attempts", attempt+1)}
		}

		delay := backoffDelay(attempt)
		log.Printf("[WARN] Generation backend rate limited, retry %d in %s", attempt+1, delay)
		b.sleep(delay)
	}
}

// Generate produces per-locale name/description pairs for one product.
// Failures are typed (*BackendError) with stable codes so a config problem
// never masquerades as a data problem.
func (b *Backend) Generate(ctx context.Context, req Request) (map[string]models.TranslationEntry, error) {
	if b.apiKey == "" || b.modelID == "" {
		log.Printf("[WARN] Generation backend credentials missing")
		return nil, &BackendError{Code: CodeMissingCreds}
	}

	languages := []string{req.InputLanguage}
	for _, lang := range req.TargetLanguages {
		if lang != req.InputLanguage {
			languages = append(languages, lang)
		}
	}

	var prompt string
	if req.DescriptionHTML != "" {
		prompt = buildTranslationPrompt(req.Name, req.DescriptionHTML, req.TargetLanguages)
	} else {
		prompt = buildGenerationPrompt(req.Name, stripHTML(req.Features), languages)
	}

	url := b.endpoint
	if url == "" {
		url = fmt.Sprintf(defaultEndpointFormat, b.modelID, b.apiKey)
	}

	payload, err := json.Marshal(newGenerateContentRequest(prompt))
	if err != nil {
		return nil, &BackendError{Code: CodeTransportError, Err: err}
	}

	body, err := b.postWithRetries(ctx, url, payload)
	if err != nil {
		log.Printf("[WARN] Generation backend call failed product=%s: %v", req.ProductID, err)
		return nil, err
	}

	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &BackendError{Code: CodeTransportError, Err: fmt.Errorf("decode response: %w", err)}
	}

	text := ""
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		text = resp.Candidates[0].Content.Parts[0].Text
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("[WARN] Generation backend returned no text product=%s", req.ProductID)
		return nil, &BackendError{Code: CodeEmptyResponse}
	}

	entries := ParseSegments(text)
	if len(entries) == 0 {
		log.Printf("[WARN] Generation backend output had no language markers product=%s", req.ProductID)
		return nil, &BackendError{Code: CodeUnparseable}
	}
	return entries, nil
}
