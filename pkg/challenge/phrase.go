package challenge

import (
	"context"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// FallbackPhrase is used whenever remote phrase generation is unavailable
// or fails. It must never surface as an error to the user.
const FallbackPhrase = "Rise and Shine"

const phrasePrompt = "Generate exactly 3 random, unrelated, slightly complex " +
	"English words separated by spaces. Do not use punctuation. Do not use " +
	"quotes. The output should just be the words."

const phraseTimeout = 10 * time.Second

// PhraseGenerator produces short typing-challenge phrases from a remote
// model. Without an API key it is inert and only returns FallbackPhrase.
type PhraseGenerator struct {
	client *openai.Client
	model  string
}

// NewPhraseGenerator creates a generator. An empty API key is not an error;
// the generator simply falls back to the fixed phrase.
func NewPhraseGenerator(apiKey, model string) *PhraseGenerator {
	g := &PhraseGenerator{model: model}
	if apiKey == "" {
		log.Println("No phrase API key configured, typing challenges use the fallback phrase")
		return g
	}
	if g.model == "" {
		g.model = openai.GPT4oMini
	}
	g.client = openai.NewClient(apiKey)
	return g
}

// Generate returns a challenge phrase. Any failure, timeout, or empty
// response yields FallbackPhrase.
func (g *PhraseGenerator) Generate(ctx context.Context) string {
	if g == nil || g.client == nil {
		return FallbackPhrase
	}

	ctx, cancel := context.WithTimeout(ctx, phraseTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: phrasePrompt},
		},
		MaxTokens:   20,
		Temperature: 1.0,
	})
	if err != nil {
		log.Printf("Phrase generation failed, using fallback: %v", err)
		return FallbackPhrase
	}
	if len(resp.Choices) == 0 {
		return FallbackPhrase
	}

	phrase := sanitizePhrase(resp.Choices[0].Message.Content)
	if phrase == "" {
		return FallbackPhrase
	}
	return phrase
}

// sanitizePhrase strips quotes and periods the model sometimes adds despite
// the prompt, then collapses surrounding whitespace.
func sanitizePhrase(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '.':
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
