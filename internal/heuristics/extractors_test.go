package heuristics

import (
	"math"
	"testing"
)

func TestSentenceLengthVarianceTooFewSentences(t *testing.T) {
	if got := sentenceLengthVariance("just one sentence here"); got != 50.0 {
		t.Fatalf("expected neutral-high 50.0, got %f", got)
	}
	if got := sentenceLengthVariance(""); got != 50.0 {
		t.Fatalf("expected neutral-high 50.0 for empty text, got %f", got)
	}
}

func TestSentenceLengthVarianceUniform(t *testing.T) {
	got := sentenceLengthVariance("one two three. four five six. seven eight nine.")
	if got != 0 {
		t.Fatalf("expected zero variance for uniform sentences, got %f", got)
	}
}

func TestSentenceLengthVariancePopulation(t *testing.T) {
	// word counts 2 and 4: mean 3, population variance 1
	got := sentenceLengthVariance("two words. now four words here.")
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected population variance 1.0, got %f", got)
	}
}

func TestComputeBurstinessNeutral(t *testing.T) {
	if got := computeBurstiness("only two. sentences here."); got != 0.5 {
		t.Fatalf("expected 0.5 for fewer than 3 sentences, got %f", got)
	}
}

func TestComputeBurstinessUniformIsLow(t *testing.T) {
	got := computeBurstiness("one two three. four five six. seven eight nine.")
	// stddev 0 gives raw -1, remapped to 0
	if got != 0 {
		t.Fatalf("expected 0 for perfectly uniform sentences, got %f", got)
	}
}

func TestComputeBurstinessRange(t *testing.T) {
	got := computeBurstiness("a. a b c d e f g h i j k l m n o p. hm. right. a very very long sentence with many many words indeed here.")
	if got < 0 || got > 1 {
		t.Fatalf("burstiness out of [0,1]: %f", got)
	}
}

func TestTypeTokenRatio(t *testing.T) {
	if got := typeTokenRatio(""); got != 1.0 {
		t.Fatalf("expected 1.0 for empty text, got %f", got)
	}
	if got := typeTokenRatio("word word word word"); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("expected 0.25, got %f", got)
	}
	// Case and edge punctuation are normalized away
	if got := typeTokenRatio("Word, word! WORD? (word)"); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("expected 0.25 with mixed case and punctuation, got %f", got)
	}
}

func TestCountFormulaicPhrases(t *testing.T) {
	if got := countFormulaicPhrases("my cat is cute"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	got := countFormulaicPhrases("In today's world we must leverage synergy. Furthermore, moreover.")
	if got != 5 {
		t.Fatalf("expected 5 distinct phrase matches, got %d", got)
	}
}

func TestCountEmEnDashes(t *testing.T) {
	if got := countEmEnDashes("no dashes here, just a hyphen-ated word"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := countEmEnDashes("one — and another –"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestCountSpacedHyphens(t *testing.T) {
	if got := countSpacedHyphens("well-known hyphenated-word"); got != 0 {
		t.Fatalf("expected 0 for in-word hyphens, got %d", got)
	}
	if got := countSpacedHyphens("this - that and a -- b"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestCountAIVocabularyWholeWordOnly(t *testing.T) {
	// "delve" must not match inside "delivered"
	if got := countAIVocabulary("we delivered the package"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := countAIVocabulary("Let us delve into this robust tapestry."); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestAnalyzePunctuation(t *testing.T) {
	if got := analyzePunctuation("too short. really."); got != punctuationNoOpinion {
		t.Fatalf("expected no opinion for short text, got %d", got)
	}
	if got := analyzePunctuation("First sentence. Second sentence. Third sentence."); got != punctuationUniform {
		t.Fatalf("expected uniform punctuation, got %d", got)
	}
	commaHeavy := "one, two, three thing! four, five, six item? seven, eight, nine stuff!"
	if got := analyzePunctuation(commaHeavy); got != punctuationHighCommaDensity {
		t.Fatalf("expected high comma density, got %d", got)
	}
}

func TestCountInformalityMarkers(t *testing.T) {
	if got := countInformalityMarkers("A perfectly formal sentence."); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	// slang + contraction + repeated punctuation + ellipsis
	got := countInformalityMarkers("lol im gonna lose it!! seriously...")
	if got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestLineBreakRatio(t *testing.T) {
	if got := lineBreakRatio("one line. two sentences."); got != 0 {
		t.Fatalf("expected 0 for fewer than 3 lines, got %f", got)
	}
	templated := "First point.\nSecond point.\nThird point.\nFourth point."
	if got := lineBreakRatio(templated); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected ratio 1.0 for one sentence per line, got %f", got)
	}
}
