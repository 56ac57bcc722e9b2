package promptstyle

import "strings"

const marker = "LAKSHPATH_PROMPT_STYLE_V1"

// Apply prepends a short, structured guidance block to a prompt. Prompts that
// already carry the marker are returned unchanged.
func Apply(prompt string, mode string) string {
	base := strings.TrimSpace(prompt)
	if base == "" || strings.Contains(base, marker) {
		return base
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou are a pragmatic career guidance assistant for LakshPath.")
	b.WriteString("\nGround every statement in the learner profile provided; do not invent credentials or statistics.")
	if strings.EqualFold(strings.TrimSpace(mode), "json") {
		b.WriteString("\nRespond with a single JSON object only. No prose, no Markdown fences, no extra keys.")
	} else {
		b.WriteString("\nBe concise and concrete.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
