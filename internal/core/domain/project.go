package domain

// Project is a project record as returned by the backend list/detail
// endpoints. Display names for chef, direction, statut and priorite are
// denormalised server-side.
type Project struct {
	ID            int     `json:"id"`
	Nom           string  `json:"nom"`
	Code          string  `json:"code,omitempty"`
	Description   string  `json:"description,omitempty"`
	Statut        string  `json:"statut,omitempty"`
	Priorite      string  `json:"priorite,omitempty"`
	ChefProjetID  int     `json:"chef_projet_id,omitempty"`
	ChefProjetNom string  `json:"chef_projet_nom,omitempty"`
	DirectionID   int     `json:"direction_id,omitempty"`
	DirectionNom  string  `json:"direction_nom,omitempty"`
	BudgetPrevu   float64 `json:"budget_prevu,omitempty"`
	DateDebut     string  `json:"date_debut,omitempty"`
	DateFinPrevue string  `json:"date_fin_prevue,omitempty"`
	Avancement    int     `json:"avancement,omitempty"`
}

// ProjectDraft carries the fields accepted by project create/update calls.
// References are sent as ids; the backend resolves display names.
type ProjectDraft struct {
	Nom           string  `json:"nom" validate:"required,min=3"`
	Description   string  `json:"description,omitempty"`
	ChefProjetID  int     `json:"chef_projet_id,omitempty"`
	DirectionID   int     `json:"direction_id,omitempty"`
	StatutID      int     `json:"statut_id,omitempty"`
	PrioriteID    int     `json:"priorite_id,omitempty"`
	BudgetPrevu   float64 `json:"budget_prevu,omitempty" validate:"omitempty,gte=0"`
	DateDebut     string  `json:"date_debut,omitempty"`
	DateFinPrevue string  `json:"date_fin_prevue,omitempty"`
}
