package models

// Edition is one yearly occurrence of the exhibition.
type Edition struct {
	ID        string `json:"id"`
	Year      int    `json:"annee"`
	Name      string `json:"nom"`
	StartDate string `json:"dateDebut"`
	EndDate   string `json:"dateFin"`
	Venue     string `json:"lieu"`
	Active    bool   `json:"active"`
}
