package chunker

import (
	"strings"
	"testing"
)

func TestSplitEmpty(t *testing.T) {
	chunks, err := Split("", 1000, 200)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestSplitShortText(t *testing.T) {
	text := "short document"
	chunks, err := Split(text, 1000, 200)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected single whole-text chunk, got %#v", chunks)
	}
}

func TestSplitExactSize(t *testing.T) {
	text := strings.Repeat("a", 1000)
	chunks, err := Split(text, 1000, 200)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected single chunk for len==size, got %d chunks", len(chunks))
	}
}

func TestSplitWindowPositions(t *testing.T) {
	text := strings.Repeat("x", 2500)
	chunks, err := Split(text, 1000, 200)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 2500 chars, got %d", len(chunks))
	}
	wantLens := []int{1000, 1000, 900}
	for i, chunk := range chunks {
		if len(chunk) != wantLens[i] {
			t.Errorf("chunk %d length = %d, want %d", i, len(chunk), wantLens[i])
		}
	}
}

func TestSplitReconstructs(t *testing.T) {
	var b strings.Builder
	for i := 0; b.Len() < 3456; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	size, overlap := 500, 120
	chunks, err := Split(text, size, overlap)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	var rebuilt strings.Builder
	for i, chunk := range chunks {
		if len(chunk) > size {
			t.Fatalf("chunk %d exceeds size: %d", i, len(chunk))
		}
		if i == 0 {
			rebuilt.WriteString(chunk)
			continue
		}
		if len(chunk) < overlap {
			t.Fatalf("chunk %d shorter than overlap: %d", i, len(chunk))
		}
		rebuilt.WriteString(chunk[overlap:])
	}
	if rebuilt.String() != text {
		t.Fatal("overlap-stripped concatenation does not reconstruct the source")
	}
}

func TestSplitRejectsBadParams(t *testing.T) {
	if _, err := Split("abc", 0, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Split("abc", 100, 100); err == nil {
		t.Fatal("expected error for overlap == size")
	}
	if _, err := Split("abc", 100, -1); err == nil {
		t.Fatal("expected error for negative overlap")
	}
}

func TestSplitDefault(t *testing.T) {
	text := strings.Repeat("y", 1800)
	chunks := SplitDefault(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0][800:] != chunks[1][:200] {
		t.Fatal("chunks do not overlap by 200 characters")
	}
}
