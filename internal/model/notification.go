package model

// Notification is a message addressed to one user
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	PostID    string `json:"post_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
