package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Akbari06/WellWorld/internal/llm"
	"github.com/Akbari06/WellWorld/internal/model"
	"github.com/Akbari06/WellWorld/internal/scraper"
)

// fullTextTruncate caps how much of a page's fallback full text makes it into
// the digest.
const fullTextTruncate = 500

// Generator produces text from a system prompt and user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, llm.Usage, error)
}

// Recommend scrapes each opportunity's description page and asks the model to
// pick the best one. Pages that fail to fetch are still included in the
// digest with a note, so one dead link never sinks the batch.
func Recommend(ctx context.Context, gen Generator, opps []model.Opportunity, rl *scraper.RateLimiter) (*model.Recommendation, error) {
	if len(opps) == 0 {
		return nil, fmt.Errorf("no opportunities provided")
	}

	descs := make([]map[string]string, len(opps))
	for i, opp := range opps {
		descs[i] = scraper.FetchDescription(ctx, opp.Link, rl)
	}

	prompt := fmt.Sprintf(`Please analyze these volunteering opportunities and recommend the best one:

%s

Based on the available information, which opportunity would you recommend and why?
Consider all the factors mentioned in your instructions.`, BuildDigest(opps, descs))

	text, _, err := gen.Generate(ctx, llm.AdvisorSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating recommendation: %w", err)
	}

	return &model.Recommendation{
		Recommendation: text,
		AnalyzedCount:  len(opps),
	}, nil
}

// BuildDigest formats scraped description fields into the numbered plain-text
// block the advisor prompt expects. Field order is sorted for stable output.
func BuildDigest(opps []model.Opportunity, descs []map[string]string) string {
	var b strings.Builder

	for i, opp := range opps {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", i+1, opp.Name, opp.Country)
		fmt.Fprintf(&b, "   Link: %s\n", opp.Link)

		desc := descs[i]
		if errMsg, failed := desc["error"]; failed {
			fmt.Fprintf(&b, "   Note: Could not fetch full description (%s)\n", errMsg)
			continue
		}

		b.WriteString("   Description Details:\n")
		keys := make([]string, 0, len(desc))
		for k := range desc {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := desc[k]
			if k == "full_text" {
				if len(v) > fullTextTruncate {
					v = v[:fullTextTruncate] + "..."
				}
				fmt.Fprintf(&b, "   - Full Description: %s\n", v)
				continue
			}
			fmt.Fprintf(&b, "   - %s: %s\n", fieldTitle(k), v)
		}
	}

	return b.String()
}

// fieldTitle turns a snake_case field name into a display label.
func fieldTitle(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
