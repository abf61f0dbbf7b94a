package models

import "time"

// Programme categories.
const (
	ProgramConference = "CONFERENCE"
	ProgramWorkshop   = "ATELIER"
	ProgramScreening  = "DEPISTAGE"
	ProgramAnimation  = "ANIMATION"
)

// Programme is one scheduled activity of an exhibition edition.
type Programme struct {
	ID          string    `json:"id"`
	EditionID   string    `json:"editionId"`
	Day         string    `json:"jour"` // ISO date, one exhibition day
	StartTime   string    `json:"heureDebut"`
	EndTime     string    `json:"heureFin"`
	Title       string    `json:"titre"`
	Description string    `json:"description,omitempty"`
	Speaker     string    `json:"intervenant,omitempty"`
	Location    string    `json:"lieu,omitempty"`
	Category    string    `json:"categorie"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProgrammeList is the paginated programme listing payload.
type ProgrammeList struct {
	Items []Programme `json:"programmes"`
	Meta  Pagination  `json:"pagination"`
}

// ProgrammeInput is the create/update request body for admin mutations.
type ProgrammeInput struct {
	EditionID   string `json:"editionId"`
	Day         string `json:"jour"`
	StartTime   string `json:"heureDebut"`
	EndTime     string `json:"heureFin"`
	Title       string `json:"titre"`
	Description string `json:"description,omitempty"`
	Speaker     string `json:"intervenant,omitempty"`
	Location    string `json:"lieu,omitempty"`
	Category    string `json:"categorie"`
}
