package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/repositories"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

/*
AutocompleteService backs the two as-you-type helpers. Both calls are plain
request/response against the text-generation backend — no retries; failures
surface to the caller as ErrExternalServiceFailure and the UI decides whether
to degrade to "no suggestions".

When no API key is configured the service answers from a local
longest-prefix heuristic instead, so the feature degrades rather than
disappears in keyless environments.
*/
type AutocompleteService interface {
	// SuggestPropertyName returns the single best completion of prefix among
	// candidates, with a confidence in [0,1]. ("", 0) when nothing plausibly
	// matches. Candidates may be nil; the user's distinct property names are
	// fetched in that case.
	SuggestPropertyName(ctx context.Context, userID uuid.UUID, prefix string, candidates []string) (*dtos.PropertyNameAutocompleteResponse, error)

	// SuggestUnitNumbers returns unit numbers from candidates that look like
	// what the user intends. Suggestions never stray outside candidates.
	SuggestUnitNumbers(ctx context.Context, userID uuid.UUID, propertyName, userInput string, candidates []string) (*dtos.UnitNumberAutocompleteResponse, error)
}

type autocompleteService struct {
	client *openai.Client
	repo   repositories.LockboxEntryRepository
}

// NewAutocompleteService creates the service. Pass an empty apiKey to run on
// the local heuristic only.
func NewAutocompleteService(apiKey string, repo repositories.LockboxEntryRepository) AutocompleteService {
	if apiKey == "" {
		return &autocompleteService{client: nil, repo: repo}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &autocompleteService{client: &c, repo: repo}
}

/* ---------- property name ---------- */

type propertyNameSuggestion struct {
	SuggestedPropertyName string  `json:"suggested_property_name"`
	ConfidenceScore       float64 `json:"confidence_score"`
}

func (s *autocompleteService) SuggestPropertyName(
	ctx context.Context,
	userID uuid.UUID,
	prefix string,
	candidates []string,
) (*dtos.PropertyNameAutocompleteResponse, error) {
	if len(candidates) == 0 {
		var err error
		candidates, err = s.repo.DistinctPropertyNames(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	if prefix == "" || len(candidates) == 0 {
		return &dtos.PropertyNameAutocompleteResponse{}, nil
	}

	if s.client == nil {
		name, score := bestPrefixMatch(prefix, candidates)
		return &dtos.PropertyNameAutocompleteResponse{
			SuggestedPropertyName: name,
			ConfidenceScore:       score,
		}, nil
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggested_property_name": map[string]string{"type": "string"},
			"confidence_score":        map[string]string{"type": "number"},
		},
		"required":             []string{"suggested_property_name", "confidence_score"},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "suggest_property_name",
		Description: openai.String("Return the most likely existing property name the user is typing, with a 0-1 confidence score."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	prompt := fmt.Sprintf(`Given the following prefix for a property name: %q, and a list of existing property names: %s, suggest the most likely existing property name the user is trying to type. If no property name matches the prefix well enough, return an empty string for suggested_property_name and a confidence_score of 0.

Consider the following when determining if a name matches well enough:
- The prefix should be a clear starting sequence of the suggested name.
- Typos and small variations should be taken into account.
- More weight should be given to property names that have a longer matching sequence.`,
		prefix, strings.Join(candidates, ", "))

	var out propertyNameSuggestion
	if err := s.completeInto(ctx, fn, prompt, &out); err != nil {
		return nil, err
	}

	// Never propose a name the user does not already have; snap to the
	// candidate's canonical casing.
	matched := ""
	for _, c := range candidates {
		if strings.EqualFold(c, out.SuggestedPropertyName) {
			matched = c
			break
		}
	}
	if matched == "" {
		return &dtos.PropertyNameAutocompleteResponse{}, nil
	}

	score := out.ConfidenceScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return &dtos.PropertyNameAutocompleteResponse{
		SuggestedPropertyName: matched,
		ConfidenceScore:       score,
	}, nil
}

/* ---------- unit numbers ---------- */

type unitNumberSuggestions struct {
	Suggestions []string `json:"suggestions"`
}

func (s *autocompleteService) SuggestUnitNumbers(
	ctx context.Context,
	userID uuid.UUID,
	propertyName, userInput string,
	candidates []string,
) (*dtos.UnitNumberAutocompleteResponse, error) {
	if len(candidates) == 0 && propertyName != "" {
		var err error
		candidates, err = s.repo.DistinctUnitNumbers(ctx, userID, propertyName)
		if err != nil {
			return nil, err
		}
	}
	if userInput == "" || len(candidates) == 0 {
		return &dtos.UnitNumberAutocompleteResponse{Suggestions: []string{}}, nil
	}

	if s.client == nil {
		return &dtos.UnitNumberAutocompleteResponse{
			Suggestions: prefixFilter(userInput, candidates),
		}, nil
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]string{"type": "string"},
			},
		},
		"required":             []string{"suggestions"},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "suggest_unit_numbers",
		Description: openai.String("Return unit numbers from the existing list that the user might be trying to type."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	prompt := fmt.Sprintf(`Given the property name %q and the following list of existing unit numbers: %s,
suggest unit numbers that the user might be trying to type, given their input of %q.
Only suggest unit numbers from the existing list. If there are no good suggestions, return an empty array.`,
		propertyName, strings.Join(candidates, ", "), userInput)

	var out unitNumberSuggestions
	if err := s.completeInto(ctx, fn, prompt, &out); err != nil {
		return nil, err
	}

	// Constrain to the candidate list regardless of what the model said.
	allowed := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		allowed[c] = true
	}
	filtered := make([]string, 0, len(out.Suggestions))
	for _, sug := range out.Suggestions {
		if allowed[sug] {
			filtered = append(filtered, sug)
		}
	}
	return &dtos.UnitNumberAutocompleteResponse{Suggestions: filtered}, nil
}

/* ---------- internals ---------- */

// completeInto runs one chat completion with a forced function call and
// unmarshals the tool-call arguments into out.
func (s *autocompleteService) completeInto(
	ctx context.Context,
	fn shared.FunctionDefinitionParam,
	prompt string,
	out any,
) error {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Tools: []openai.ChatCompletionToolParam{{
			Function: fn,
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: fn.Name,
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: openai: %v", utils.ErrExternalServiceFailure, err)
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return fmt.Errorf("%w: openai: no function call returned", utils.ErrExternalServiceFailure)
	}
	if err := json.Unmarshal(
		[]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments),
		out,
	); err != nil {
		return fmt.Errorf("%w: unmarshal suggestion: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}

// bestPrefixMatch picks the candidate sharing the longest case-insensitive
// leading sequence with prefix. Confidence is the matched share of the
// prefix; zero shared characters means no suggestion at all.
func bestPrefixMatch(prefix string, candidates []string) (string, float64) {
	lowered := strings.ToLower(prefix)
	best, bestLen := "", 0
	for _, c := range candidates {
		n := commonPrefixLen(lowered, strings.ToLower(c))
		if n > bestLen {
			best, bestLen = c, n
		}
	}
	if bestLen == 0 {
		return "", 0
	}
	return best, float64(bestLen) / float64(len(lowered))
}

func prefixFilter(input string, candidates []string) []string {
	lowered := strings.ToLower(input)
	out := []string{}
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lowered) {
			out = append(out, c)
		}
	}
	return out
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
