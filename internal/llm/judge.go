package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Result is a provider-neutral judge verdict.
type Result struct {
	Score      int     `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Judge grades a document for AI-generation likelihood. Implementations
// normalize their provider's wire protocol into Result and the error
// types below; callers never see provider-specific envelopes.
type Judge interface {
	Score(ctx context.Context, text string) (Result, error)
	Name() string
}

// systemRubric is the fixed grading rubric sent to every provider. It is
// a versioned behavioral contract shared by all adapters: changing it
// changes scores, so treat edits as a behavior change, not a bugfix.
const systemRubric = `You are an AI content detection expert. Analyze the given text and determine how likely it is to be AI-generated.

Score from 0-10:
- 0-2: Clearly human-written (informal, typos, unique voice, personal anecdotes)
- 3-4: Mostly human (some polished sections but overall natural)
- 5-6: Uncertain/mixed (could be AI-assisted or a very polished human writer)
- 7-8: Likely AI (formulaic structure, smooth transitions, generic language)
- 9-10: Almost certainly AI (textbook AI patterns, no personality, template-like)

Strong AI indicators (increase score when present):
- Em dashes (—), en dashes (–), or excessive hyphenated constructions — humans rarely use these in casual writing
- Overused AI vocabulary: plethora, delve, leverage, unleash, unlock, harness, revolutionize, paradigm, synergy, holistic, nuanced, robust, transformative, cutting-edge, game-changer, supercharge, tapestry, bustling, myriad, pivotal, comprehensive, framework, trajectory, spectrum, facet, confluence, remarkable
- Formal filler phrases: "it's worth noting", "in today's world", "let's dive in", "moreover", "furthermore", "additionally", "in light of", "studies have shown", "experts agree", "all things considered", "subsequently", "to some extent", "it can be argued"
- Every paragraph starting with transition words
- Excessive passive voice and academic hedging
- Repetitive sentence structures with uniform length
- Generic examples without specificity
- Excessive superlatives

Strong human indicators (decrease score when present):
- Typos, slang, abbreviations (lol, tbh, fr, smh, ngl)
- Incomplete sentences, stream of consciousness
- Personal anecdotes with specific details
- Irregular punctuation, multiple exclamation/question marks
- Contractions and casual tone
- Unique voice and personality

Respond ONLY with valid JSON in this exact format:
{"score": <0-10>, "confidence": <0.0-1.0>}

No other text. Just the JSON.`

const (
	requestTemperature = 0.1
	requestMaxTokens   = 100
)

func userPrompt(text string) string {
	return "Analyze this text for AI generation:\n\n" + text
}

type scorePayload struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// parseScore interprets a model reply as the rubric's score JSON. Models
// sometimes wrap the JSON in prose or markdown fences, so a failed direct
// parse falls back to the substring between the first '{' and the last '}'.
// Both fields are clamped; the model is not trusted to honor its bounds.
func parseScore(content string) (Result, error) {
	content = strings.TrimSpace(content)

	var payload scorePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		start := strings.Index(content, "{")
		if start < 0 {
			return Result{}, &ParseError{Raw: content, Reason: "no JSON object in reply"}
		}
		end := strings.LastIndex(content, "}")
		if end < start {
			return Result{}, &ParseError{Raw: content, Reason: "malformed JSON object in reply"}
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
			return Result{}, &ParseError{Raw: content, Reason: fmt.Sprintf("parse score JSON: %v", err)}
		}
	}

	score := int(math.Round(payload.Score))
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return Result{Score: score, Confidence: confidence}, nil
}
