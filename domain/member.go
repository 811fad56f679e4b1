package domain

// Member is one entry of a group roster, as returned by the roster collaborator.
type Member struct {
	ID          string
	DisplayName string
}
