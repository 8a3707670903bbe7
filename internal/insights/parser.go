package insights

import "strings"

// DefaultTitle is used for suggestion lines that carry no colon.
const DefaultTitle = "Suggestion"

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ParseSuggestions splits the service's newline-delimited suggestion text
// into titled entries. Rules: lines are trimmed, empty lines are discarded,
// the FIRST colon splits title from description (later colons stay in the
// description), and a line with no colon becomes a description under
// DefaultTitle. A colon with an empty left side also falls back to
// DefaultTitle.
func ParseSuggestions(raw string) []Suggestion {
	out := make([]Suggestion, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title, desc, found := strings.Cut(line, ":")
		if !found {
			out = append(out, Suggestion{Title: DefaultTitle, Description: line})
			continue
		}
		title = strings.TrimSpace(title)
		desc = strings.TrimSpace(desc)
		if title == "" {
			title = DefaultTitle
		}
		out = append(out, Suggestion{Title: title, Description: desc})
	}
	return out
}
