package models

import "time"

// Media kinds accepted by the backend.
const (
	MediaImage    = "IMAGE"
	MediaVideo    = "VIDEO"
	MediaDocument = "DOCUMENT"
)

// Media is an uploaded asset (exhibition photos, press kits, logos).
type Media struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"titre"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"taille"`
	EditionID  string    `json:"editionId,omitempty"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MediaList is the paginated media listing payload.
type MediaList struct {
	Items []Media    `json:"medias"`
	Meta  Pagination `json:"pagination"`
}
