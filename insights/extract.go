package insights

import "strings"

// ExtractJSON pulls a JSON object out of a model reply that may be wrapped in
// a markdown code fence or surrounded by prose.
func ExtractJSON(response string) string {
	const marker = "```"

	startIdx := strings.Index(response, marker)
	if startIdx == -1 {
		// No code block; find the outermost braces directly.
		startIdx = strings.Index(response, "{")
		if startIdx == -1 {
			return response
		}
		endIdx := strings.LastIndex(response, "}")
		if endIdx == -1 {
			return response
		}
		return strings.TrimSpace(response[startIdx : endIdx+1])
	}

	rest := response[startIdx+len(marker):]
	// Skip a language tag like "json" on the fence line.
	if nl := strings.Index(rest, "\n"); nl != -1 {
		rest = rest[nl+1:]
	}
	endIdx := strings.Index(rest, marker)
	if endIdx == -1 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:endIdx])
}
