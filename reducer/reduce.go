// Package reducer implements the immutable-state container: a pure
// transition function plus a Store that owns the current state.
package reducer

import (
	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
)

// Reduce returns the state that results from applying a to s.
//
// Exactly the field named by the action is replaced; every other field is
// carried over by sharing. AddPost builds a new posts slice with the post
// first, so slices held by earlier snapshots are never mutated. Actions
// outside the closed set leave s unchanged.
func Reduce(s model.AppState, a action.Action) model.AppState {
	next, _ := reduce(s, a)
	return next
}

func reduce(s model.AppState, a action.Action) (model.AppState, bool) {
	switch act := a.(type) {
	case action.SetUsers:
		s.Users = act.Users
	case action.SetPosts:
		s.Posts = act.Posts
	case action.SetCurrentUser:
		s.CurrentUser = act.User
	case action.SetLoading:
		s.Loading = act.Loading
	case action.SetError:
		s.Error = act.Err
	case action.AddPost:
		s.Posts = prepend(act.Post, s.Posts)
	default:
		return s, false
	}
	return s, true
}

func prepend(p model.Post, posts []model.Post) []model.Post {
	out := make([]model.Post, 0, len(posts)+1)
	out = append(out, p)
	return append(out, posts...)
}
