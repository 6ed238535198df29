package services

import (
	"strings"
	"testing"
)

func TestChunkTextKeepsShortTextWhole(t *testing.T) {
	t.Parallel()

	chunker := NewTextChunker()
	chunks := chunker.ChunkText("short resume text", 1000, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "short resume text" {
		t.Fatalf("chunk altered: %q", chunks[0])
	}
}

func TestChunkTextSplitsLongText(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("Led the migration of a payments platform to Go. ")
	}
	chunker := NewTextChunker()

	chunks := chunker.ChunkText(b.String(), 500, 50)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 600 {
			t.Fatalf("chunk %d exceeds the size bound: %d chars", i, len(chunk))
		}
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	t.Parallel()

	chunker := NewTextChunker()
	if chunks := chunker.ChunkText("", 1000, 100); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty text, got %d", len(chunks))
	}
	if chunks := chunker.ChunkText("\n\n  \n\n", 1000, 100); len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace text, got %d", len(chunks))
	}
}
