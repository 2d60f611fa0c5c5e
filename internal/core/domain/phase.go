package domain

// Phase is a single phase of a project. Phases are ordered within their
// project by Ordre.
type Phase struct {
	ID         int    `json:"id"`
	ProjetID   int    `json:"projet_id"`
	Nom        string `json:"nom"`
	Statut     string `json:"statut,omitempty"`
	Ordre      int    `json:"ordre"`
	DateDebut  string `json:"date_debut,omitempty"`
	DateFin    string `json:"date_fin,omitempty"`
	Avancement int    `json:"avancement"`
}

// PhaseDraft carries the fields accepted by phase create/update calls.
type PhaseDraft struct {
	Nom        string `json:"nom" validate:"required"`
	Statut     string `json:"statut,omitempty"`
	Ordre      int    `json:"ordre" validate:"gte=0"`
	DateDebut  string `json:"date_debut,omitempty"`
	DateFin    string `json:"date_fin,omitempty"`
	Avancement int    `json:"avancement" validate:"gte=0,lte=100"`
}
