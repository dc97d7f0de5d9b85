package poster

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/genai"
	"github.com/bsatnami/Ai-Masterji/internal/infra"
)

const suggestionPrompt = `Analyze the provided product image(s) and the style reference image. Based on them, generate exactly 3 diverse, creative, one-sentence prompts for a promotional poster. The prompts should be concise and inspiring. Return the result as a JSON array of strings. Example: ["A refreshing drink on a vibrant, sun-drenched beach.", "The product featured in a sleek, minimalist studio setting.", "An epic, cinematic shot of the product on a mountain peak."]`

var suggestionSchema = &genai.Schema{
	Type:  "ARRAY",
	Items: &genai.Schema{Type: "STRING"},
}

const maxSuggestions = 3

// Suggester produces short creative prompt variants. Suggestions are a
// convenience feature: every failure degrades to an empty list. Results are
// cached per asset fingerprint and concurrent identical requests are
// coalesced, so repeated refreshes after a generation do not multiply calls.
type Suggester struct {
	client StructuredClient
	cache  *gocache.Cache
	group  singleflight.Group
	logger infra.Logger
}

// NewSuggester constructs a Suggester caching results for ttl.
func NewSuggester(client StructuredClient, ttl time.Duration, logger infra.Logger) *Suggester {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Suggester{
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Suggestions returns up to three one-line prompt ideas for the current
// assets. It never returns an error; malformed responses and transport
// failures yield an empty list.
func (s *Suggester) Suggestions(ctx context.Context, products []domain.Asset, style *domain.Asset) []string {
	if len(products) == 0 || style == nil {
		return nil
	}

	key := fingerprint(products, style)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]string)
	}

	result, _, _ := s.group.Do(key, func() (any, error) {
		suggestions := s.fetch(ctx, products, style)
		if len(suggestions) > 0 {
			s.cache.SetDefault(key, suggestions)
		}
		return suggestions, nil
	})
	return result.([]string)
}

func (s *Suggester) fetch(ctx context.Context, products []domain.Asset, style *domain.Asset) []string {
	parts := make([]genai.Part, 0, len(products)+2)
	for _, p := range products {
		parts = append(parts, genai.ImagePart(p.MIME, p.Data))
	}
	parts = append(parts, genai.ImagePart(style.MIME, style.Data))
	parts = append(parts, genai.TextPart(suggestionPrompt))

	raw, err := s.client.AnalyzeJSON(ctx, parts, suggestionSchema)
	if err != nil {
		s.logger.Debug().Err(err).Msg("suggestions: call failed")
		return []string{}
	}

	var suggestions []string
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		s.logger.Debug().Err(err).Msg("suggestions: response not a string array")
		return []string{}
	}

	out := make([]string, 0, maxSuggestions)
	for _, sug := range suggestions {
		if sug = strings.TrimSpace(sug); sug != "" {
			out = append(out, sug)
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func fingerprint(products []domain.Asset, style *domain.Asset) string {
	hasher := sha256.New()
	for _, p := range products {
		hasher.Write([]byte(p.ID))
		hasher.Write([]byte{'|'})
	}
	hasher.Write([]byte(style.ID))
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
