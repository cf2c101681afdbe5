package model

// AppState is the shallow application state held by a container.
//
// Fields are independently replaceable. CurrentUser need not be a member
// of Users. Posts are most-recent-first by convention of AddPost.
type AppState struct {
	Users       []User  `json:"users" yaml:"users"`
	Posts       []Post  `json:"posts" yaml:"posts"`
	CurrentUser *User   `json:"current_user" yaml:"current_user"`
	Loading     bool    `json:"loading" yaml:"loading"`
	Error       *string `json:"error" yaml:"error"`
}

// Initial returns the empty state a container starts with.
func Initial() AppState {
	return AppState{
		Users: []User{},
		Posts: []Post{},
	}
}

// ErrorText returns the error message, or "" when no error is recorded.
func (s AppState) ErrorText() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

// FindUser returns the user with id from Users.
func (s AppState) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// StringPtr returns a pointer to s, for building SetError payloads.
func StringPtr(s string) *string {
	return &s
}
