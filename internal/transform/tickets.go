package transform

import (
	"regexp"
	"strings"
)

var ticketRe = regexp.MustCompile(`\\?\[([A-Z]{2,}-\d+(?:\s*&\s*[A-Z]{2,}-\d+)*)\\?\]`)

// TicketPlaceholder is replaced by the ticket identifier in a URL template.
const TicketPlaceholder = "{id}"

// TicketLinker links bracketed ticket references such as "[ABC-12 & ABC-13]".
type TicketLinker struct {
	URLTemplate string
}

// URL builds the tracker URL for one ticket identifier.
func (l TicketLinker) URL(id string) string {
	return strings.ReplaceAll(l.URLTemplate, TicketPlaceholder, id)
}

// Apply rewrites every ticket reference in text. An empty template disables it.
func (l TicketLinker) Apply(text string) string {
	if l.URLTemplate == "" {
		return text
	}
	return ticketRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := ticketRe.FindStringSubmatch(m)[1]
		ids := strings.Split(inner, "&")
		links := make([]string, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			links = append(links, "["+id+"]("+l.URL(id)+")")
		}
		return "[" + strings.Join(links, " & ") + "]"
	})
}
