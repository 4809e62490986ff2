// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import "strings"

// indicatorPhrases mark sentences that usually carry a paper's
// contribution or results.
var indicatorPhrases = []string{
	"we propose", "we present", "we introduce", "we develop",
	"results show", "our approach", "our method", "we demonstrate",
	"we achieve", "we show", "outperforms", "state-of-the-art",
	"contribution", "novel", "new",
}

// KeyFindings extracts the sentences of an abstract that look like key
// findings. Sentences containing an indicator phrase are returned in
// order; when none match, the last one or two sentences are used instead,
// since abstracts tend to end with their conclusions.
func KeyFindings(abstract string) []string {
	sentences := splitSentences(abstract)
	if len(sentences) == 0 {
		return nil
	}

	var findings []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, phrase := range indicatorPhrases {
			if strings.Contains(lower, phrase) {
				findings = append(findings, sentence)
				break
			}
		}
	}
	if len(findings) > 0 {
		return findings
	}

	if len(sentences) > 1 {
		return sentences[len(sentences)-2:]
	}
	return sentences
}

// splitSentences breaks text at sentence-ending punctuation followed by a
// space. Single-letter abbreviations ("J. Doe") and decimal points do not
// end a sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		if i+1 >= len(runes) || runes[i+1] != ' ' {
			continue
		}
		if r == '.' && isAbbreviation(runes, i) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// isAbbreviation reports whether the period at index i ends a
// single-letter token, like an initial in an author name.
func isAbbreviation(runes []rune, i int) bool {
	if i == 0 {
		return false
	}
	// Letter directly before the period, with a boundary before it.
	if !isLetter(runes[i-1]) {
		return false
	}
	return i-2 < 0 || runes[i-2] == ' '
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
