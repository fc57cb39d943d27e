// Package chunker splits long court opinions into overlapping passages sized
// for embedding. Boundaries follow paragraph and sentence structure so a
// passage never cuts a holding mid-sentence.
package chunker

import (
	"strings"
	"unicode/utf8"
)

type Options struct {
	MaxChars int // target passage size in characters
	Overlap  int // sentences carried over into the next passage
}

func DefaultOptions() Options {
	return Options{MaxChars: 1500, Overlap: 1}
}

// Passage is one chunk of an opinion, numbered by position.
type Passage struct {
	Content string
	Index   int
}

// Split breaks text into passages. Text that fits in one passage is returned
// unchanged.
func Split(text string, opts Options) []Passage {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultOptions().MaxChars
	}
	if opts.Overlap < 0 {
		opts.Overlap = 0
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= opts.MaxChars {
		return []Passage{{Content: text, Index: 0}}
	}

	var sentences []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sentences = append(sentences, splitSentences(para)...)
	}

	var passages []Passage
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		passages = append(passages, Passage{
			Content: strings.TrimSpace(strings.Join(current, " ")),
			Index:   len(passages),
		})
		// Seed the next passage with trailing sentences for continuity.
		if opts.Overlap > 0 && opts.Overlap < len(current) {
			current = current[len(current)-opts.Overlap:]
		} else {
			current = nil
		}
		currentLen = 0
		for _, s := range current {
			currentLen += utf8.RuneCountInString(s) + 1
		}
	}

	for _, s := range sentences {
		sLen := utf8.RuneCountInString(s) + 1
		if currentLen > 0 && currentLen+sLen > opts.MaxChars {
			flush()
		}
		current = append(current, s)
		currentLen += sLen

		// A single sentence longer than the budget becomes its own passage.
		if currentLen > opts.MaxChars && len(current) == 1 {
			passages = append(passages, Passage{
				Content: strings.TrimSpace(current[0]),
				Index:   len(passages),
			})
			current = nil
			currentLen = 0
		}
	}
	if len(current) > 0 {
		content := strings.TrimSpace(strings.Join(current, " "))
		if content != "" && (len(passages) == 0 || content != passages[len(passages)-1].Content) {
			passages = append(passages, Passage{Content: content, Index: len(passages)})
		}
	}

	return passages
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && runes[i+1] == ' ' {
			// Reporter abbreviations like "F.3d" and "U.S." are not
			// sentence ends.
			if i+2 < len(runes) && isLowerOrDigit(runes[i+2]) {
				continue
			}
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isLowerOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
