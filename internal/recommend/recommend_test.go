package recommend

import (
	"strings"
	"testing"

	"github.com/Akbari06/WellWorld/internal/model"
)

func TestBuildDigest(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "Beach Cleanup", Link: "https://example.com/a", Country: "kenya"},
		{Name: "Tree Planting", Link: "https://example.com/b", Country: "peru"},
	}
	descs := []map[string]string{
		{"time_commitment": "Weekends", "cost": "Free"},
		{"error": "page returned status 404"},
	}

	digest := BuildDigest(opps, descs)

	if !strings.Contains(digest, "1. Beach Cleanup (kenya)") {
		t.Errorf("missing first entry header:\n%s", digest)
	}
	if !strings.Contains(digest, "- Time Commitment: Weekends") {
		t.Errorf("missing titled field:\n%s", digest)
	}
	if !strings.Contains(digest, "- Cost: Free") {
		t.Errorf("missing cost field:\n%s", digest)
	}
	if !strings.Contains(digest, "Could not fetch full description (page returned status 404)") {
		t.Errorf("missing fetch-failure note:\n%s", digest)
	}
}

func TestBuildDigest_FullTextTruncated(t *testing.T) {
	opps := []model.Opportunity{{Name: "Long", Link: "https://example.com/c", Country: "mali"}}
	descs := []map[string]string{{"full_text": strings.Repeat("x", 800)}}

	digest := BuildDigest(opps, descs)

	if !strings.Contains(digest, "Full Description: "+strings.Repeat("x", fullTextTruncate)+"...") {
		t.Errorf("full text not truncated:\n%.200s", digest)
	}
	if strings.Contains(digest, strings.Repeat("x", fullTextTruncate+1)) {
		t.Errorf("digest contains more than %d chars of full text", fullTextTruncate)
	}
}
