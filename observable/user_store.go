// Package observable implements the mutable-store container: stores whose
// fields publish a notice on every write, composed under a RootStore.
package observable

import (
	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/reactive"
)

// UserStore holds user-scoped state.
type UserStore struct {
	Users       *reactive.Field[[]model.User]
	CurrentUser *reactive.Field[*model.User]
	Loading     *reactive.Field[bool]
	Error       *reactive.Field[*string]
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	s := &UserStore{
		Users:       reactive.NewField(string(action.FieldUsers), []model.User{}),
		CurrentUser: reactive.NewField[*model.User](string(action.FieldCurrentUser), nil),
		Loading:     reactive.NewField(string(action.FieldLoading), false),
		Error:       reactive.NewField[*string](string(action.FieldError), nil),
	}
	s.Loading.SetEqualFunc(reactive.EqualComparable[bool])
	return s
}

func (s *UserStore) SetUsers(users []model.User) {
	s.Users.Set(users)
}

func (s *UserStore) SetCurrentUser(user *model.User) {
	s.CurrentUser.Set(user)
}

func (s *UserStore) SetLoading(loading bool) {
	s.Loading.Set(loading)
}

func (s *UserStore) SetError(err *string) {
	s.Error.Set(err)
}

func (s *UserStore) observables() []reactive.Observable {
	return []reactive.Observable{s.Users, s.CurrentUser, s.Loading, s.Error}
}
