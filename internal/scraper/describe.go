package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// fullTextLimit caps the fallback full-page text when no labeled sections are
// found.
const fullTextLimit = 2000

// descriptionFields maps a heading substring to the output field it fills.
// Order matters: the first matching substring wins, so a heading fills exactly
// one field — "Time Commitment" sets time_commitment only, and the bare "time"
// catch-all at the end picks up plain "Times" headings for available_times.
var descriptionFields = []struct {
	substr string
	field  string
}{
	{"available times", "available_times"},
	{"time commitment", "time_commitment"},
	{"recurrence", "recurrence"},
	{"recurring", "recurrence"},
	{"cost", "cost"},
	{"fee", "cost"},
	{"cause areas", "cause_areas"},
	{"cause", "cause_areas"},
	{"benefits", "benefits"},
	{"good for", "good_for"},
	{"time", "available_times"},
}

// ExtractDescription pulls labeled description fields from an opportunity
// page: headings like "Time Commitment" or "Cost" followed by a content
// block. When no labeled sections exist, the main content text is returned
// under "full_text", capped at fullTextLimit characters.
func ExtractDescription(doc *goquery.Document) map[string]string {
	fields := make(map[string]string)

	doc.Find("h1, h2, h3, h4, h5, h6, strong, b").Each(func(_ int, heading *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(heading.Text()))
		if label == "" {
			return
		}

		for _, df := range descriptionFields {
			if !strings.Contains(label, df.substr) {
				continue
			}
			if _, done := fields[df.field]; done {
				break
			}
			content := heading.NextAllFiltered("p, div, ul, ol").First()
			if text := strings.TrimSpace(content.Text()); text != "" {
				fields[df.field] = text
			}
			break
		}
	})

	if len(fields) == 0 {
		main := doc.Find("main, article, div[class*='content'], div[class*='description']").First()
		if text := strings.Join(strings.Fields(main.Text()), " "); text != "" {
			if len(text) > fullTextLimit {
				text = text[:fullTextLimit]
			}
			fields["full_text"] = text
		}
	}

	return fields
}

// FetchDescription fetches an opportunity URL and extracts its description
// fields. A fetch or parse failure never fails the caller's batch: the error
// is reported under an "error" key instead.
func FetchDescription(ctx context.Context, pageURL string, rl *RateLimiter) map[string]string {
	if rl != nil {
		if err := rl.Wait(ctx); err != nil {
			return map[string]string{"error": err.Error()}
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "GET", pageURL, nil)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return map[string]string{"error": fmt.Sprintf("page returned status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}

	return ExtractDescription(doc)
}
