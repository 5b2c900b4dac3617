package translate

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// buildGenerationPrompt asks the backend to originate name+description
// content for every listed language from a plain-text feature list.
func buildGenerationPrompt(name, features string, languages []string) string {
	return fmt.Sprintf(
		"You are an expert e-commerce copywriter. For each language listed, "+
			"return a block starting with `=== [LANG]` followed by an <h3> title "+
			"and a short HTML description (max 240 words).\n\n"+
			"Languages: %s\n\n"+
			"Product name: %s\nFeatures: %s",
		strings.Join(languages, ", "), name, features,
	)
}

// buildTranslationPrompt asks the backend to translate an existing
// name+HTML-description pair into the target languages, markup intact.
func buildTranslationPrompt(name, descriptionHTML string, targets []string) string {
	return fmt.Sprintf(
		"Translate the following product name and HTML description into: %s. "+
			"Keep HTML tags intact. Each block must start with `=== [LANG]`.\n\n"+
			"Product name: %s\nDescription: %s",
		strings.Join(targets, ", "), name, descriptionHTML,
	)
}

// stripHTML reduces markup-bearing content to its text, for use as the
// plain feature list in generation prompts.
func stripHTML(raw string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	var parts []string
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			if text := strings.TrimSpace(tokenizer.Token().Data); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}
