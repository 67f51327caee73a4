// Package sentiment scores the emotional polarity of short chat messages.
package sentiment

import (
	"strings"
	"unicode"
)

// Analyzer scores text polarity in [-1, 1]; negative is upset, positive is
// happy, zero is neutral or unknown.
type Analyzer interface {
	Polarity(text string) float64
}

const (
	negationFactor = -0.5
	intensifier    = 1.3
)

var defaultWords = map[string]float64{
	// positive
	"happy": 0.8, "glad": 0.5, "great": 0.8, "good": 0.7, "wonderful": 1.0,
	"excellent": 1.0, "amazing": 0.6, "love": 0.5, "lovely": 0.5, "nice": 0.6,
	"thanks": 0.2, "thank": 0.2, "grateful": 0.6, "excited": 0.4, "fine": 0.4,
	"better": 0.5, "best": 1.0, "fantastic": 0.4, "joy": 0.8, "cheerful": 0.8,
	"fun": 0.3, "beautiful": 0.85, "pleased": 0.5, "delighted": 0.7, "calm": 0.3,
	"relieved": 0.4, "enjoy": 0.4, "enjoyed": 0.4, "awesome": 1.0, "perfect": 1.0,
	// negative
	"sad": -0.5, "bad": -0.7, "terrible": -1.0, "awful": -1.0, "worried": -0.5,
	"worry": -0.4, "afraid": -0.6, "scared": -0.6, "lonely": -0.5, "alone": -0.3,
	"pain": -0.6, "hurt": -0.5, "hurts": -0.5, "sick": -0.7, "ill": -0.5,
	"tired": -0.4, "angry": -0.5, "upset": -0.5, "anxious": -0.5, "depressed": -0.7,
	"miserable": -1.0, "horrible": -1.0, "worse": -0.4, "worst": -1.0, "confused": -0.4,
	"dizzy": -0.4, "weak": -0.4, "hate": -0.8, "cry": -0.5, "crying": -0.5,
	"unhappy": -0.6, "frustrated": -0.6, "nervous": -0.4, "fell": -0.3, "forgot": -0.2,
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "isn't": true, "don't": true,
	"doesn't": true, "didn't": true, "can't": true, "won't": true, "wasn't": true,
	"aren't": true, "cannot": true,
}

var intensifiers = map[string]bool{
	"very": true, "really": true, "so": true, "extremely": true, "too": true, "quite": true,
}

// Lexicon is a word-list Analyzer. A word's score is flipped and halved
// after a negator and scaled up after an intensifier; the polarity is the
// mean over scored words.
type Lexicon struct {
	words map[string]float64
}

// NewLexicon returns a Lexicon over the built-in English word list.
func NewLexicon() *Lexicon {
	return &Lexicon{words: defaultWords}
}

func (l *Lexicon) Polarity(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	var scored int
	for i, tok := range tokens {
		score, ok := l.words[tok]
		if !ok {
			continue
		}
		if i > 0 && intensifiers[tokens[i-1]] {
			score *= intensifier
		}
		if negatedWithin(tokens, i, 3) {
			score *= negationFactor
		}
		sum += score
		scored++
	}
	if scored == 0 {
		return 0
	}
	return clamp(sum / float64(scored))
}

func negatedWithin(tokens []string, i, window int) bool {
	for j := i - 1; j >= 0 && j >= i-window; j-- {
		if negators[tokens[j]] {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
