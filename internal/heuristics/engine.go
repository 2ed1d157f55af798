package heuristics

import (
	"math"
	"strings"
)

// Result is the heuristic engine's opinion on a document: a 0-10 score
// and the named evidence behind it, in detection order.
type Result struct {
	Score   int
	Signals []string
}

// Category weights. Phrase, dash, and vocabulary matches are strong
// evidence; stylometric statistics are weaker and noisier.
const (
	weightSentenceVariance = 2.0
	weightBurstiness       = 1.5
	weightVocabDiversity   = 1.5
	weightFormulaic        = 2.5
	weightEmEnDash         = 5.0
	weightSpacedHyphen     = 2.0
	weightAIVocabulary     = 2.0
	weightPunctuation      = 1.0
	weightInformality      = 2.0
	weightLineBreaks       = 1.5
	weightPromotional      = 2.0
)

const shortTextWordThreshold = 20

// Analyze scores a document with weighted evidence accumulation. There
// is no prior: a category with nothing to say contributes no weight, so
// absence of evidence does not pull the score toward a midpoint. The
// neutral fallback of 5 only applies when every category abstains.
func Analyze(text string) Result {
	var signals []string
	scoreSum := 0.0
	weightSum := 0.0

	vote := func(score, weight float64) {
		scoreSum += score * weight
		weightSum += weight
	}

	// 1. Sentence length variance (AI tends toward uniform lengths)
	switch variance := sentenceLengthVariance(text); {
	case variance < 5.0:
		signals = append(signals, "uniform_sentence_length")
		vote(8, weightSentenceVariance)
	case variance < 15.0:
		signals = append(signals, "low_sentence_variance")
		vote(5, weightSentenceVariance)
	default:
		vote(2, weightSentenceVariance)
	}

	// 2. Burstiness: uniform rhythm leans AI, high variability leans
	// human. Exactly 0.5 is the too-short neutral value and abstains.
	switch burstiness := computeBurstiness(text); {
	case burstiness < 0.3:
		signals = append(signals, "low_burstiness")
		vote(7, weightBurstiness)
	case burstiness < 0.5:
		vote(4, weightBurstiness)
	case burstiness == 0.5:
	default:
		vote(2, weightBurstiness)
	}

	// 3. Vocabulary diversity
	switch ttr := typeTokenRatio(text); {
	case ttr < 0.4:
		signals = append(signals, "low_vocabulary_diversity")
		vote(7, weightVocabDiversity)
	case ttr < 0.55:
		signals = append(signals, "moderate_vocabulary_diversity")
		vote(4, weightVocabDiversity)
	default:
		vote(2, weightVocabDiversity)
	}

	// 4. Formulaic phrase detection
	switch formulaCount := countFormulaicPhrases(text); {
	case formulaCount >= 3:
		signals = append(signals, "formulaic_phrases")
		vote(9, weightFormulaic)
	case formulaCount >= 1:
		signals = append(signals, "some_formulaic_phrases")
		vote(5, weightFormulaic)
	}

	// 5. Dash usage. Em/en dashes in casual social text are treated as
	// near-definitive; the override below keeps other neutral signals
	// from diluting them.
	emEnDashes := countEmEnDashes(text)
	if emEnDashes > 0 {
		signals = append(signals, "em_dash_usage")
		vote(10, weightEmEnDash)
	} else if countSpacedHyphens(text) >= 2 {
		signals = append(signals, "spaced_hyphen_usage")
		vote(6, weightSpacedHyphen)
	}

	// 6. Standalone AI vocabulary
	switch vocabCount := countAIVocabulary(text); {
	case vocabCount >= 3:
		signals = append(signals, "ai_vocabulary")
		vote(8, weightAIVocabulary)
	case vocabCount >= 1:
		signals = append(signals, "some_ai_vocabulary")
		vote(5, weightAIVocabulary)
	}

	// 7. Punctuation patterns
	switch analyzePunctuation(text) {
	case punctuationUniform:
		signals = append(signals, "uniform_punctuation")
		vote(6, weightPunctuation)
	case punctuationHighCommaDensity:
		signals = append(signals, "high_comma_frequency")
		vote(6, weightPunctuation)
	}

	// 8. Informality markers are human evidence. A single marker is too
	// weak to vote on; a lone trailing ellipsis is common in any text.
	switch informality := countInformalityMarkers(text); {
	case informality >= 3:
		signals = append(signals, "informal_markers")
		vote(0, weightInformality)
	case informality >= 2:
		signals = append(signals, "informal_markers")
		vote(2, weightInformality)
	}

	// 9. Line-break formatting ("one sentence per line" template posts)
	if ratio := lineBreakRatio(text); ratio > 0.9 {
		signals = append(signals, "line_break_formatting")
		vote(7, weightLineBreaks)
	}

	// 10. Promotional / call-to-action patterns
	switch promoCount := countPromotionalPhrases(text); {
	case promoCount >= 2:
		signals = append(signals, "promotional_patterns")
		vote(8, weightPromotional)
	case promoCount == 1:
		signals = append(signals, "some_promotional_patterns")
		vote(5, weightPromotional)
	}

	// Too short for reliable statistics: informational only, no weight.
	// Confidence is conveyed at the combination stage.
	if len(strings.Fields(text)) < shortTextWordThreshold {
		signals = append(signals, "short_text_low_confidence")
	}

	finalScore := 5
	if weightSum > 0 {
		finalScore = int(math.Round(scoreSum / weightSum))
	}

	// Em/en dash override: near-definitive evidence must not be diluted.
	if emEnDashes > 0 && finalScore < 8 {
		finalScore = 8
	}

	if finalScore < 0 {
		finalScore = 0
	}
	if finalScore > 10 {
		finalScore = 10
	}

	return Result{Score: finalScore, Signals: signals}
}
