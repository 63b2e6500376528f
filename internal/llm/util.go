package llm

import "strings"

// CleanJSONBlock strips a surrounding markdown code fence from a model
// reply. Models often fence their JSON (```json ... ```) even when told
// not to; anything without a leading fence passes through untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	body, fenced := strings.CutPrefix(text, "```")
	if !fenced {
		return text
	}

	// The fence line may carry a language tag ("json", "javascript")
	// before the payload starts.
	if tag, rest, found := strings.Cut(body, "\n"); found && looksLikeLanguageTag(tag) {
		body = rest
	} else {
		body = strings.TrimPrefix(body, "json")
	}

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func looksLikeLanguageTag(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) < 20 && !strings.ContainsAny(line, " {")
}
