package schema

// SimpleUser is the identity projection returned by login.
type SimpleUser struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name"`
}

// User is the full account record returned by the session endpoint.
type User struct {
	ID       ID      `json:"id"`
	Username string  `json:"username" validate:"required"`
	Name     string  `json:"name"`
	Email    string  `json:"email" validate:"required,email"`
	Balance  float64 `json:"balance"`
}

// Simple projects the user onto the login shape.
func (u User) Simple() SimpleUser {
	return SimpleUser{Username: u.Username, Name: u.Name}
}

// Film is a single catalogue entry.
type Film struct {
	ID       ID     `json:"id"`
	Title    string `json:"title" validate:"required"`
	Director string `json:"director,omitempty"`
	Year     int    `json:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
}
