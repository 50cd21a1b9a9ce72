package certwizard

import "regexp"

var (
	placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)
	// Conditional blocks as used by the built-in templates:
	// {{#if place}}...{{/if}} keeps its body only when the field is set.
	conditionalRe = regexp.MustCompile(`(?s)\{\{#if\s+([A-Za-z0-9_]+)\s*\}\}(.*?)\{\{/if\}\}`)
)

// ParticipantFields builds the substitution map for one participant plus the
// event metadata. Keys are the canonical field names used in templates.
func ParticipantFields(p Participant, eventName, eventLocation, issueDate string) map[string]string {
	return map[string]string{
		"participant_name": p.FullName,
		"email":            p.Email,
		"role":             string(p.Role),
		"place":            p.Place,
		"event_name":       eventName,
		"event_location":   eventLocation,
		"issue_date":       issueDate,
		// Older templates use {{date}} for the issue date.
		"date": issueDate,
	}
}

// RenderTemplate substitutes {{fieldName}} placeholders in the template
// markup. Unresolved placeholders render as empty string. Conditional
// {{#if field}} blocks are resolved first so their bodies disappear
// entirely when the field is empty.
func RenderTemplate(content string, fields map[string]string) string {
	content = conditionalRe.ReplaceAllStringFunc(content, func(match string) string {
		groups := conditionalRe.FindStringSubmatch(match)
		if fields[groups[1]] == "" {
			return ""
		}
		return groups[2]
	})

	return placeholderRe.ReplaceAllStringFunc(content, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		return fields[name]
	})
}

// Placeholders lists the distinct placeholder names referenced by the
// template markup, in order of first appearance.
func Placeholders(content string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderRe.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
