package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const suggestionCount = 3

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// FounderSummary is what the model sees when drafting a bio.
type FounderSummary struct {
	FirstName   string
	FounderType string
	LookingFor  []string
	Skills      []string
	HasIdea     string
	Idea        string
	Location    string
	WeeklyHours string
}

// GenerateBios drafts short first-person bios for the onboarding form.
func (c *GeminiClient) GenerateBios(ctx context.Context, founder FounderSummary) ([]string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(bioPrompt(founder)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate bios: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return parseSuggestions(sb.String())
}

func bioPrompt(f FounderSummary) string {
	idea := "Not specified"
	switch f.HasIdea {
	case "yes":
		idea = "Has an idea and needs help building it"
	case "no":
		idea = "Wants to join someone else's idea"
	case "both":
		idea = "Open to either"
	}
	if f.Idea != "" {
		idea += ": " + f.Idea
	}

	return fmt.Sprintf(`
		Write %d distinct short bios (2-3 sentences each, first person) for a startup founder
		looking for a co-founder.
		Name: %s
		Founder type: %s
		Looking for: %s
		Skills: %s
		Idea: %s
		Location: %s
		Availability: %s hours/week

		Tone: confident, specific, no buzzwords.
		Output: JSON array of strings. Example: ["I'm...", "I've..."]
	`, suggestionCount, f.FirstName, f.FounderType, strings.Join(f.LookingFor, ", "),
		strings.Join(f.Skills, ", "), idea, f.Location, f.WeeklyHours)
}

// parseSuggestions reads the model output as a JSON array, falling back to
// one suggestion per non-empty line.
func parseSuggestions(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	// Clean up markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var suggestions []string
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				suggestions = append(suggestions, line)
			}
		}
		if len(suggestions) == 0 {
			return nil, fmt.Errorf("failed to parse bio suggestions: %w", err)
		}
	}

	out := suggestions[:0]
	for _, s := range suggestions {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) > suggestionCount {
		out = out[:suggestionCount]
	}
	return out, nil
}
