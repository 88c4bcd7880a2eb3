package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-20:]
		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Errorf("chunk %d does not start with the previous chunk's overlap", i)
		}
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 250) + "END"
	chunks := SplitText(text, 100, 10)

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(last, "END") {
		t.Fatalf("last chunk should contain the end of the input, got %q", last)
	}
}

func TestSplitTextRuneSafe(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 50)
	chunks := SplitText(text, 100, 20)

	for i, c := range chunks {
		if strings.ContainsRune(c, '�') {
			t.Errorf("chunk %d contains a broken rune", i)
		}
	}
}
