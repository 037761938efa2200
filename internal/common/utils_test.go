package common

import "testing"

func TestOneOf(t *testing.T) {
	if !OneOf("PRECIO", "PRICE", "PRECIO") {
		t.Fatalf("expected match")
	}
	if OneOf("FECHA_PRECIO", "PRECIO", "PRICE") {
		t.Fatalf("expected no substring match")
	}
}

func TestFoldHeader(t *testing.T) {
	if got := FoldHeader("\ufeff fecha_precio "); got != "FECHA_PRECIO" {
		t.Fatalf("expected FECHA_PRECIO, got %q", got)
	}
}
