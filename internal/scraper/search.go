package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Akbari06/WellWorld/internal/model"
)

// DefaultSearchURL is the listing-site search page. The country query is
// appended as the "q" parameter.
const DefaultSearchURL = "https://www.idealist.org/en/search"

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// SearchOpportunities fetches the listing-site search page for a country and
// returns the opportunity links it finds. limit <= 0 means no limit.
func SearchOpportunities(ctx context.Context, searchURL, country string, limit int, rl *RateLimiter) ([]model.Opportunity, error) {
	if rl != nil {
		if err := rl.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("parsing search URL: %w", err)
	}
	q := u.Query()
	q.Set("q", country)
	q.Set("type", "VOLOP")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("search page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search HTML: %w", err)
	}

	return ParseSearchResults(doc, u, country, limit), nil
}

// ParseSearchResults extracts opportunity name/link entries from a search
// results document. Relative links are resolved against base.
func ParseSearchResults(doc *goquery.Document, base *url.URL, country string, limit int) []model.Opportunity {
	var opps []model.Opportunity
	seen := make(map[string]bool)

	doc.Find("a[href*='/volop/']").Each(func(_ int, link *goquery.Selection) {
		if limit > 0 && len(opps) >= limit {
			return
		}

		href, ok := link.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}

		if ref, err := url.Parse(href); err == nil && base != nil {
			href = base.ResolveReference(ref).String()
		}
		if seen[href] {
			return
		}
		seen[href] = true

		opps = append(opps, model.Opportunity{
			Name:    name,
			Link:    href,
			Country: country,
		})
	})

	return opps
}
