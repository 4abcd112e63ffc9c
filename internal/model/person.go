package model

type Student struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	College string `json:"college"`
	Batch   string `json:"batch"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Client struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Guide is a supervisor attached to a project regardless of its type.
// Only the name is collected on creation; phone and email are optional.
type Guide struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
