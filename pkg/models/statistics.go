package models

import "time"

// GlobalStatistics is the site-wide statistics snapshot.
type GlobalStatistics struct {
	Editions      int       `json:"editions"`
	Registrations int       `json:"inscriptions"`
	Exhibitors    int       `json:"exposants"`
	Volunteers    int       `json:"benevoles"`
	Partners      int       `json:"partenaires"`
	Visitors      int       `json:"visiteurs"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// DayCount is registrations counted for one day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RegistrationStatistics breaks registrations down for one edition.
type RegistrationStatistics struct {
	EditionID string         `json:"editionId"`
	Total     int            `json:"total"`
	ByRole    map[string]int `json:"parRole"`
	ByDay     []DayCount     `json:"parJour"`
}

// DashboardStatistics is the admin dashboard aggregate.
type DashboardStatistics struct {
	Global        GlobalStatistics       `json:"global"`
	Registrations RegistrationStatistics `json:"inscriptions"`
	PendingUsers  int                    `json:"utilisateursEnAttente"`
}
