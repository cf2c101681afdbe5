// Package action defines the closed set of state transitions a container
// accepts.
package action

import "github.com/odvcencio/furry-feed/model"

// Kind tags an action.
type Kind string

const (
	KindSetUsers       Kind = "SET_USERS"
	KindSetPosts       Kind = "SET_POSTS"
	KindSetCurrentUser Kind = "SET_CURRENT_USER"
	KindSetLoading     Kind = "SET_LOADING"
	KindSetError       Kind = "SET_ERROR"
	KindAddPost        Kind = "ADD_POST"
)

// Field names a replaceable part of model.AppState.
type Field string

const (
	FieldUsers       Field = "users"
	FieldPosts       Field = "posts"
	FieldCurrentUser Field = "currentUser"
	FieldLoading     Field = "loading"
	FieldError       Field = "error"
)

// Fields lists every state field in declaration order.
var Fields = []Field{FieldUsers, FieldPosts, FieldCurrentUser, FieldLoading, FieldError}

// Action is an immutable request to transition state.
// The set is sealed; only the types in this package implement it.
type Action interface {
	Kind() Kind
	// Field reports the single state field the action writes.
	Field() Field
	isAction()
}

// SetUsers replaces the users list.
type SetUsers struct {
	Users []model.User
}

// SetPosts replaces the posts list.
type SetPosts struct {
	Posts []model.Post
}

// SetCurrentUser replaces the current user. A nil User clears it.
type SetCurrentUser struct {
	User *model.User
}

// SetLoading replaces the loading flag.
type SetLoading struct {
	Loading bool
}

// SetError replaces the error message. A nil Err clears it.
type SetError struct {
	Err *string
}

// AddPost prepends a post.
type AddPost struct {
	Post model.Post
}

func (SetUsers) Kind() Kind       { return KindSetUsers }
func (SetPosts) Kind() Kind       { return KindSetPosts }
func (SetCurrentUser) Kind() Kind { return KindSetCurrentUser }
func (SetLoading) Kind() Kind     { return KindSetLoading }
func (SetError) Kind() Kind       { return KindSetError }
func (AddPost) Kind() Kind        { return KindAddPost }

func (SetUsers) Field() Field       { return FieldUsers }
func (SetPosts) Field() Field       { return FieldPosts }
func (SetCurrentUser) Field() Field { return FieldCurrentUser }
func (SetLoading) Field() Field     { return FieldLoading }
func (SetError) Field() Field       { return FieldError }
func (AddPost) Field() Field        { return FieldPosts }

func (SetUsers) isAction()       {}
func (SetPosts) isAction()       {}
func (SetCurrentUser) isAction() {}
func (SetLoading) isAction()     {}
func (SetError) isAction()       {}
func (AddPost) isAction()        {}

// Error builds a SetError carrying msg.
func Error(msg string) SetError {
	return SetError{Err: model.StringPtr(msg)}
}

// ClearError builds a SetError that clears the error.
func ClearError() SetError {
	return SetError{}
}

// CurrentUser builds a SetCurrentUser for u.
func CurrentUser(u model.User) SetCurrentUser {
	return SetCurrentUser{User: &u}
}
