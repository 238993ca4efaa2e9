package chunk

import (
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// MarkdownChunker splits markup documents at section headings. Sections
// never overlap: each one spans from its heading line (inclusive) to the
// next heading line (exclusive), or end of file. Content before the first
// heading forms its own section.
type MarkdownChunker struct{}

// Chunk splits content into heading-delimited sections. A section larger
// than maxChunkSize is sub-split by windows; the sub-windows keep the
// section's heading in HeadingPath but report fallback_window offsets.
func (m MarkdownChunker) Chunk(content, filePath string, maxChunkSize int) []Chunk {
	if content == "" {
		return nil
	}

	var chunks []Chunk

	sectionStart := 0
	heading := ""

	flush := func(end int) {
		if end <= sectionStart {
			return
		}
		text := content[sectionStart:end]
		if strings.TrimSpace(text) == "" {
			return
		}
		chunks = append(chunks, m.section(text, filePath, sectionStart, heading, maxChunkSize)...)
	}

	offset := 0
	for _, line := range splitAfterLines(content) {
		trimmed := strings.TrimSuffix(line, "\n")
		if match := headingPattern.FindStringSubmatch(trimmed); match != nil {
			flush(offset)
			sectionStart = offset
			heading = trimmed
		}
		offset += len(line)
	}
	flush(len(content))

	return chunks
}

// section emits one header_section chunk, or window sub-splits when the
// section exceeds the size limit.
func (m MarkdownChunker) section(text, filePath string, start int, heading string, maxChunkSize int) []Chunk {
	if len(text) <= maxChunkSize {
		return []Chunk{{
			FilePath:    filePath,
			StartChar:   start,
			EndChar:     start + len(text),
			Type:        TypeHeaderSection,
			Text:        text,
			HeadingPath: heading,
		}}
	}

	sub := windows(text, filePath, start, maxChunkSize)
	for i := range sub {
		sub[i].HeadingPath = heading
	}
	return sub
}

// splitAfterLines splits content into lines that keep their trailing
// newline, so offsets can be accumulated by length.
func splitAfterLines(content string) []string {
	var lines []string
	for len(content) > 0 {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}
