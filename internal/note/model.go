package note

// Note is the single record the service manages.
// Email is the owner and is only ever set at creation.
type Note struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Email string   `json:"email,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Email string
	Tag   string
}

// Selector addresses one note. An empty Email matches any owner.
type Selector struct {
	ID    string
	Email string
}
