package challenge

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wakemind/wakemind/pkg/models"
)

// TestMathVerifyAcceptsExactAnswer verifies the numeric grading of a math
// challenge, including whitespace tolerance and rejection of words.
func TestMathVerifyAcceptsExactAnswer(t *testing.T) {
	t.Parallel()

	c := Challenge{Type: models.ChallengeMath, Question: "37 + 18", Answer: 55}

	require.True(t, c.Verify("55"))
	require.True(t, c.Verify(" 55 "))
	require.True(t, c.Verify("55\n"))
	require.False(t, c.Verify("54"))
	require.False(t, c.Verify("fifty-five"))
	require.False(t, c.Verify(""))
}

// TestTypingVerifyIsCaseSensitive verifies the typing challenge: leading and
// trailing whitespace is forgiven, everything else must match exactly.
func TestTypingVerifyIsCaseSensitive(t *testing.T) {
	t.Parallel()

	c := Challenge{Type: models.ChallengeTyping, Phrase: "orbit velvet cactus"}

	require.True(t, c.Verify("orbit velvet cactus"))
	require.True(t, c.Verify("  orbit velvet cactus  "))
	require.False(t, c.Verify("Orbit velvet cactus"))
	require.False(t, c.Verify("orbit  velvet cactus"))
	require.False(t, c.Verify("orbit velvet"))
	require.False(t, c.Verify(""))
}

// TestNewMathStaysInRange verifies the generated operands and that
// subtraction never produces a negative answer. The generator is random, so
// run it enough times to cover both operators.
func TestNewMathStaysInRange(t *testing.T) {
	t.Parallel()

	sawAdd := false
	sawSub := false

	for i := 0; i < 500; i++ {
		c := NewMath()
		require.Equal(t, models.ChallengeMath, c.Type)
		require.NotEmpty(t, c.Question)

		var a, b int
		var op string
		_, err := fmt.Sscanf(c.Question, "%d %s %d", &a, &op, &b)
		require.NoError(t, err, "question %q", c.Question)

		switch op {
		case "+":
			sawAdd = true
			require.Equal(t, a+b, c.Answer)
		case "-":
			sawSub = true
			require.Equal(t, a-b, c.Answer)
			require.GreaterOrEqual(t, c.Answer, 0)
		default:
			t.Fatalf("unexpected operator %q in %q", op, c.Question)
		}

		require.True(t, c.Verify(strconv.Itoa(c.Answer)))
		require.False(t, c.Verify(strconv.Itoa(c.Answer+1)))
	}

	require.True(t, sawAdd, "500 generations never produced addition")
	require.True(t, sawSub, "500 generations never produced subtraction")
}

// TestPrepareWithoutAPIKeyUsesFallback verifies that a typing challenge
// prepared without a configured phrase service carries the built-in phrase.
func TestPrepareWithoutAPIKeyUsesFallback(t *testing.T) {
	t.Parallel()

	p := NewProvider(NewPhraseGenerator("", ""))

	c := p.Prepare(context.Background(), models.ChallengeTyping)
	require.Equal(t, models.ChallengeTyping, c.Type)
	require.Equal(t, FallbackPhrase, c.Phrase)
	require.True(t, c.Verify(FallbackPhrase))
}

// TestPrepareMath verifies that preparing a math challenge never touches the
// phrase service.
func TestPrepareMath(t *testing.T) {
	t.Parallel()

	p := NewProvider(NewPhraseGenerator("", ""))

	c := p.Prepare(context.Background(), models.ChallengeMath)
	require.Equal(t, models.ChallengeMath, c.Type)
	require.Empty(t, c.Phrase)
	require.NotEmpty(t, c.Question)
}

// TestSanitizePhrase verifies cleanup of quoted or punctuated completions.
func TestSanitizePhrase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`"orbit velvet cactus"`, "orbit velvet cactus"},
		{"'orbit velvet cactus'", "orbit velvet cactus"},
		{"orbit velvet cactus.", "orbit velvet cactus"},
		{"  orbit velvet cactus  ", "orbit velvet cactus"},
		{"orbit velvet cactus", "orbit velvet cactus"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, sanitizePhrase(tc.in), "input %q", tc.in)
	}
}

// TestFallbackPhraseShape guards the exact fallback text the dismiss flow
// relies on when the phrase service is unreachable.
func TestFallbackPhraseShape(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Rise and Shine", FallbackPhrase)
	require.Len(t, strings.Fields(FallbackPhrase), 3)
}
