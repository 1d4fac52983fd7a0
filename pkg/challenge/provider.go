package challenge

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/wakemind/wakemind/pkg/models"
)

// Challenge is the puzzle gating alarm dismissal. For math challenges
// Question holds the expression and Answer the expected result; for typing
// challenges Phrase holds the exact text to reproduce.
type Challenge struct {
	Type     models.ChallengeType
	Question string
	Answer   int
	Phrase   string
}

// NewMath produces an arithmetic challenge: two positive integers with
// either addition or a subtraction ordered so the result is never negative.
func NewMath() Challenge {
	num1 := rand.IntN(50) + 10
	num2 := rand.IntN(40) + 5

	if rand.IntN(2) == 0 {
		return Challenge{
			Type:     models.ChallengeMath,
			Question: fmt.Sprintf("%d + %d", num1, num2),
			Answer:   num1 + num2,
		}
	}

	hi, lo := num1, num2
	if lo > hi {
		hi, lo = lo, hi
	}
	return Challenge{
		Type:     models.ChallengeMath,
		Question: fmt.Sprintf("%d - %d", hi, lo),
		Answer:   hi - lo,
	}
}

// NewTyping wraps a phrase in a typing challenge.
func NewTyping(phrase string) Challenge {
	return Challenge{
		Type:   models.ChallengeTyping,
		Phrase: phrase,
	}
}

// Verify checks a submitted answer. Math input is parsed as an integer and
// non-numeric input is simply a non-match. Typing input is trimmed of
// leading/trailing whitespace and compared case-sensitively with no other
// normalization.
func (c Challenge) Verify(input string) bool {
	switch c.Type {
	case models.ChallengeTyping:
		return strings.TrimSpace(input) == c.Phrase
	case models.ChallengeMath:
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return false
		}
		return n == c.Answer
	default:
		return false
	}
}

// Provider prepares challenges for ringing alarms. Phrase generation may
// call out to a remote model; the provider itself never fails, it degrades
// to the fixed fallback phrase.
type Provider struct {
	phrases *PhraseGenerator
}

// NewProvider creates a Provider backed by the given phrase generator.
// A nil generator is valid and always yields the fallback phrase.
func NewProvider(phrases *PhraseGenerator) *Provider {
	return &Provider{phrases: phrases}
}

// Prepare builds a challenge of the requested kind. Typing challenges block
// on phrase generation, so callers run Prepare off the UI thread while the
// alarm is already ringing.
func (p *Provider) Prepare(ctx context.Context, kind models.ChallengeType) Challenge {
	if kind == models.ChallengeTyping {
		return NewTyping(p.phrases.Generate(ctx))
	}
	return NewMath()
}
