package chunker

import "fmt"

// Default window parameters, tuned for embedding context sizes.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// Split cuts text into a deterministic sliding window of chunks: chunk i
// starts at i*(size-overlap) and runs for at most size characters. The final
// chunk may be shorter. Empty text yields no chunks.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in [0, size), got size=%d overlap=%d", size, overlap)
	}
	if len(text) == 0 {
		return nil, nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks, nil
}

// SplitDefault applies the default window parameters.
func SplitDefault(text string) []string {
	chunks, _ := Split(text, DefaultSize, DefaultOverlap)
	return chunks
}
