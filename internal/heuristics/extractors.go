package heuristics

import (
	"math"
	"strings"
	"unicode"
)

// Signal extractors. Each one is a pure function of the document text;
// the engine owns thresholds and weights, the extractors only measure.

// splitSentences splits on terminal punctuation and drops empty fragments.
func splitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func sentenceWordCounts(sentences []string) []float64 {
	counts := make([]float64, len(sentences))
	for i, sentence := range sentences {
		counts[i] = float64(len(strings.Fields(sentence)))
	}
	return counts
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func varianceOf(values []float64) float64 {
	mean := meanOf(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return sum / float64(len(values))
}

// sentenceLengthVariance measures how uniform sentence lengths are.
// Fewer than two sentences is not enough evidence to judge, so a fixed
// neutral-high value is returned.
func sentenceLengthVariance(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) < 2 {
		return 50.0
	}
	return varianceOf(sentenceWordCounts(sentences))
}

// computeBurstiness returns (stddev - mean) / (stddev + mean) over
// sentence word counts, remapped from [-1,1] to [0,1]. Low burstiness
// means uniform rhythm. 0.5 is the neutral value for texts too short
// to measure.
func computeBurstiness(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) < 3 {
		return 0.5
	}

	lengths := sentenceWordCounts(sentences)
	mean := meanOf(lengths)
	if mean == 0 {
		return 0.5
	}

	stdDev := math.Sqrt(varianceOf(lengths))
	raw := (stdDev - mean) / (stdDev + mean)
	return (raw + 1.0) / 2.0
}

// tokenize lowercases and strips non-alphanumeric edge characters from
// whitespace-delimited tokens, dropping anything left empty.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimFunc(strings.ToLower(field), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// typeTokenRatio is unique tokens over total tokens; empty text is 1.0.
func typeTokenRatio(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 1.0
	}
	unique := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		unique[token] = struct{}{}
	}
	return float64(len(unique)) / float64(len(tokens))
}

func countPhraseMatches(text string, phrases []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

func countFormulaicPhrases(text string) int {
	return countPhraseMatches(text, formulaicPhrases)
}

func countPromotionalPhrases(text string) int {
	return countPhraseMatches(text, promotionalPhrases)
}

// countEmEnDashes counts Unicode em and en dashes.
func countEmEnDashes(text string) int {
	count := 0
	for _, r := range text {
		if r == '—' || r == '–' {
			count++
		}
	}
	return count
}

// countSpacedHyphens counts space-padded hyphen sequences, a weaker
// proxy for dash-style punctuation typed on a plain keyboard.
func countSpacedHyphens(text string) int {
	return strings.Count(text, " - ") + strings.Count(text, " -- ")
}

func countWholeWordMatches(text string, words []string) int {
	tokens := tokenize(text)
	present := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		present[token] = struct{}{}
	}
	count := 0
	for _, word := range words {
		if _, ok := present[word]; ok {
			count++
		}
	}
	return count
}

// countAIVocabulary matches the standalone vocabulary list whole-word.
func countAIVocabulary(text string) int {
	return countWholeWordMatches(text, aiVocabulary)
}

// punctuationVerdict classifies punctuation patterns. The zero verdict
// means no opinion.
type punctuationVerdict int

const (
	punctuationNoOpinion punctuationVerdict = iota
	punctuationUniform
	punctuationHighCommaDensity
)

func analyzePunctuation(text string) punctuationVerdict {
	if len(splitSentences(text)) < 3 {
		return punctuationNoOpinion
	}

	periods := strings.Count(text, ".")
	terminators := periods + strings.Count(text, "!") + strings.Count(text, "?")
	if terminators == 0 {
		return punctuationNoOpinion
	}

	if float64(periods)/float64(terminators) > 0.95 {
		return punctuationUniform
	}

	wordCount := len(strings.Fields(text))
	if wordCount > 0 {
		commaRatio := float64(strings.Count(text, ",")) / float64(wordCount)
		if commaRatio > 0.15 {
			return punctuationHighCommaDensity
		}
	}

	return punctuationNoOpinion
}

// countInformalityMarkers counts slang words, casual contractions, and
// irregular punctuation (repeated terminators, ellipses).
func countInformalityMarkers(text string) int {
	count := countWholeWordMatches(text, slangWords)

	lower := strings.ToLower(text)
	for _, contraction := range casualContractions {
		if strings.Contains(lower, contraction) {
			count++
		}
	}

	if strings.Contains(text, "!!") || strings.Contains(text, "??") {
		count++
	}
	if strings.Contains(text, "...") {
		count++
	}

	return count
}

// lineBreakRatio is non-empty lines over sentences, flagging the
// one-sentence-per-line formatting of templated posts. Returns 0 when
// there are fewer than 3 non-empty lines or no sentences.
func lineBreakRatio(text string) float64 {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if lines < 3 {
		return 0
	}

	sentences := len(splitSentences(text))
	if sentences == 0 {
		return 0
	}

	return float64(lines) / float64(sentences)
}
