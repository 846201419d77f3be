package journal

import "time"

type Quote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	DateAdded Date      `json:"dateAdded"`
	CreatedAt time.Time `json:"createdAt"`
}
