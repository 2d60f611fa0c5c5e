package domain

// Reference is a generic id/name pair served by the /reference endpoints
// (directions, roles, statuts, priorites).
type Reference struct {
	ID          int    `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description,omitempty"`
}
