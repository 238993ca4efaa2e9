package chunk

// WindowOverlapDivisor sets the fallback window overlap to a tenth of the
// window size, so content spanning a cut boundary appears in both windows.
const WindowOverlapDivisor = 10

// WindowChunker splits content into fixed-size overlapping windows. It is
// the fallback strategy for plain files and for structural chunks that
// exceed the size limit.
type WindowChunker struct{}

// Chunk splits content into windows of maxChunkSize characters.
func (WindowChunker) Chunk(content, filePath string, maxChunkSize int) []Chunk {
	return windows(content, filePath, 0, maxChunkSize)
}

// windows emits fixed-size windows over content. base is the offset of
// content within the original file, so sub-splits of a structural chunk
// keep offsets addressed to the whole file. Starts strictly increase and
// the final window is truncated to the end of content, never padded.
func windows(content, filePath string, base, size int) []Chunk {
	if content == "" || size < 1 {
		return nil
	}

	overlap := size / WindowOverlapDivisor
	stride := size - overlap

	var chunks []Chunk
	for start := 0; start < len(content); start += stride {
		end := start + size
		if end > len(content) {
			end = len(content)
		}

		chunks = append(chunks, Chunk{
			FilePath:  filePath,
			StartChar: base + start,
			EndChar:   base + end,
			Type:      TypeFallbackWindow,
			Text:      content[start:end],
		})

		if end == len(content) {
			break
		}
	}

	return chunks
}
