package model

// Group is the chat group attached to a game
type Group struct {
	ID        string   `json:"id"`
	PostID    string   `json:"post_id"`
	Name      string   `json:"name"`
	Sport     string   `json:"sport,omitempty"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// Message is a single chat message in a group
type Message struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}
