package domain

import "github.com/samber/lo"

// ComputeVisibility derives the set of user ids permitted to see a message.
// An empty resolved mention set yields nil, the sentinel for room-wide
// visibility. Otherwise the set is exactly {sender} ∪ resolved mentions.
// Pure function: no side effects, no I/O.
func ComputeVisibility(senderID string, mentionIDs []string) []string {
	if len(mentionIDs) == 0 {
		return nil
	}
	return lo.Uniq(append([]string{senderID}, mentionIDs...))
}

// Visible reports whether a user id belongs to a visibility set.
// A nil set means unrestricted.
func Visible(visibleTo []string, userID string) bool {
	if visibleTo == nil {
		return true
	}
	return lo.Contains(visibleTo, userID)
}
