package reduce

import "fmt"

// Chunk is a window of raw log lines with a stable 1-based index.
// Each chunk after the first carries the last line of the previous
// window as its first line, preserving context across boundaries.
type Chunk struct {
	Index int
	Lines []string
}

// Split partitions lines into chunks of size lines each. Windows
// advance by exactly size lines; indices are contiguous starting at 1.
// The same input and size always produce identical boundaries.
func Split(lines []string, size int) ([]Chunk, error) {
	if size < 1 {
		return nil, fmt.Errorf("chunk size must be at least 1, got %d", size)
	}

	var chunks []Chunk
	for i := 0; i < len(lines); i += size {
		start := i
		if i > 0 {
			start = i - 1
		}
		end := min(i+size, len(lines))

		chunks = append(chunks, Chunk{
			Index: i/size + 1,
			Lines: lines[start:end],
		})
	}

	return chunks, nil
}
