package services

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segments shorter than this are merged into their neighbour so stray
// punctuation does not produce noise evidence.
const minSegmentRunes = 4

// Sentences returns a lazy, restartable sequence of the non-empty trimmed
// sentences of text, in original order. Every emitted sentence is a
// contiguous substring of the input.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range splitSentences(text) {
			if !yield(s) {
				return
			}
		}
	}
}

// splitSentences splits text on sentence-terminating punctuation and line
// breaks. ASCII '.' and ';' only terminate when followed by whitespace or
// end of input, which keeps URLs and decimals intact.
func splitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	type span struct{ start, end int }
	var spans []span

	start := 0
	for i, r := range text {
		size := utf8.RuneLen(r)
		switch r {
		case '\n':
			spans = append(spans, span{start, i})
			start = i + size
		case '。', '．', '！', '？', '；':
			spans = append(spans, span{start, i + size})
			start = i + size
		case '.', '!', '?', ';':
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if next == utf8.RuneError || unicode.IsSpace(next) {
				spans = append(spans, span{start, i + size})
				start = i + size
			}
		}
	}
	if start < len(text) {
		spans = append(spans, span{start, len(text)})
	}

	// Merge short fragments into the preceding segment (or forward when
	// there is none yet), extending byte ranges so every result stays a
	// contiguous substring of the input.
	var merged []span
	pendingStart := -1
	for _, sp := range spans {
		if pendingStart >= 0 {
			sp.start = pendingStart
			pendingStart = -1
		}
		seg := strings.TrimSpace(text[sp.start:sp.end])
		if seg == "" {
			pendingStart = sp.start
			continue
		}
		if utf8.RuneCountInString(seg) < minSegmentRunes {
			if len(merged) > 0 {
				merged[len(merged)-1].end = sp.end
			} else {
				pendingStart = sp.start
			}
			continue
		}
		merged = append(merged, sp)
	}
	if pendingStart >= 0 && len(merged) > 0 {
		merged[len(merged)-1].end = len(text)
	}

	var sentences []string
	for _, sp := range merged {
		if seg := strings.TrimSpace(text[sp.start:sp.end]); seg != "" {
			sentences = append(sentences, seg)
		}
	}
	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}
