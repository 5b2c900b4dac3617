package translate

import "testing"

func TestParseSegmentsAssignsBlocksToLanguages(t *testing.T) {
	raw := "=== EN <h3>Title: Sub</h3> body === FR <h3>Titre</h3> corps"

	out := ParseSegments(raw)
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}

	en, ok := out["en"]
	if !ok {
		t.Fatalf("missing en segment: %v", out)
	}
	if en.ProductName != "Title" {
		t.Errorf("en name: expected %q, got %q", "Title", en.ProductName)
	}
	if en.Description != "<h3>Title: Sub</h3> body" {
		t.Errorf("en description: got %q", en.Description)
	}

	fr, ok := out["fr"]
	if !ok {
		t.Fatalf("missing fr segment: %v", out)
	}
	if fr.ProductName != "Titre" {
		t.Errorf("fr name: expected %q, got %q", "Titre", fr.ProductName)
	}
	if fr.Description != "<h3>Titre</h3> corps" {
		t.Errorf("fr description: got %q", fr.Description)
	}
}

func TestParseSegmentsNoMarkers(t *testing.T) {
	out := ParseSegments("just some prose without any markers")
	if len(out) != 0 {
		t.Fatalf("expected empty map, got %v", out)
	}

	out = ParseSegments("")
	if len(out) != 0 {
		t.Fatalf("expected empty map for empty input, got %v", out)
	}
}

func TestParseSegmentsNoHeadingKeepsDescription(t *testing.T) {
	out := ParseSegments("=== DE Ein Absatz ohne Titel.")

	de, ok := out["de"]
	if !ok {
		t.Fatalf("missing de segment: %v", out)
	}
	if de.ProductName != "" {
		t.Errorf("expected empty name, got %q", de.ProductName)
	}
	if de.Description != "Ein Absatz ohne Titel." {
		t.Errorf("description: got %q", de.Description)
	}
}

func TestParseSegmentsDecodesNameEntities(t *testing.T) {
	out := ParseSegments("=== ES <h3>Caf&eacute; &amp; T&eacute;</h3> <p>desc</p>")

	es := out["es"]
	if es.ProductName != "Café & Té" {
		t.Errorf("expected decoded name, got %q", es.ProductName)
	}
	// The description keeps the raw markup, entities included
	if es.Description != "<h3>Caf&eacute; &amp; T&eacute;</h3> <p>desc</p>" {
		t.Errorf("description: got %q", es.Description)
	}
}

func TestParseSegmentsLowercasesCodes(t *testing.T) {
	out := ParseSegments("=== IT <h3>Nome</h3> testo")
	if _, ok := out["it"]; !ok {
		t.Fatalf("expected lowercased locale key, got %v", out)
	}
}
