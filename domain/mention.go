package domain

import (
	"regexp"

	"github.com/samber/lo"
)

// mentionPattern matches "@name" tokens on word boundaries.
var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions scans a message body for "@name" tokens and returns the raw
// names in order of appearance. Duplicates are preserved here; resolution
// collapses them.
func ExtractMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// ResolveMentions matches raw mention names against a group roster and returns
// the ids of members whose display name matched at least one token.
// Matching is case-sensitive. Names that resolve to nobody are dropped without
// error: mention resolution is a best-effort filter, never a validation step.
func ResolveMentions(rawNames []string, roster []Member) []string {
	if len(rawNames) == 0 || len(roster) == 0 {
		return nil
	}
	names := lo.Uniq(rawNames)
	var resolved []string
	for _, member := range roster {
		if lo.Contains(names, member.DisplayName) {
			resolved = append(resolved, member.ID)
		}
	}
	return resolved
}
