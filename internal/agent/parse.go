package agent

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// proposalRE finds the first JSON object embedded in free-form text.
var proposalRE = regexp.MustCompile(`(?s)\{.*?\}`)

// ExtractProposal pulls an (action, amount) proposal out of untrusted
// free-form text: prose around a JSON object, fenced code blocks, and
// amounts encoded as numbers or digit strings are all tolerated.
// Anything unusable degrades to a check proposal; the betting engine's
// normalizer is the real legality gate downstream.
func ExtractProposal(raw string) (string, int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "check", 0
	}

	if strings.HasPrefix(raw, "```") {
		var kept []string
		for _, line := range strings.Split(raw, "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "```") {
				kept = append(kept, line)
			}
		}
		raw = strings.TrimSpace(strings.Join(kept, " "))
	}

	if m := proposalRE.FindString(raw); m != "" {
		raw = m
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "check", 0
	}

	action := ""
	if v, ok := obj["action"].(string); ok {
		action = strings.ToLower(strings.TrimSpace(v))
	}
	return action, coerceAmount(obj["amount"])
}

func coerceAmount(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
