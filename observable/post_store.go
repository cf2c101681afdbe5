package observable

import (
	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/reactive"
)

// PostsCountField names the derived posts count in notices.
const PostsCountField = "postsCount"

// PostStore holds post-scoped state.
type PostStore struct {
	Posts   *reactive.Field[[]model.Post]
	Loading *reactive.Field[bool]
	Error   *reactive.Field[*string]

	count *reactive.Derived[int]
}

// NewPostStore creates an empty PostStore.
func NewPostStore() *PostStore {
	s := &PostStore{
		Posts:   reactive.NewField(string(action.FieldPosts), []model.Post{}),
		Loading: reactive.NewField(string(action.FieldLoading), false),
		Error:   reactive.NewField[*string](string(action.FieldError), nil),
	}
	s.Loading.SetEqualFunc(reactive.EqualComparable[bool])
	s.count = reactive.NewDerived(PostsCountField, s.PostsCount, s.Posts)
	s.count.SetEqualFunc(reactive.EqualComparable[int])
	return s
}

func (s *PostStore) SetPosts(posts []model.Post) {
	s.Posts.Set(posts)
}

// AddPost inserts post at the front. The previous slice is left intact.
func (s *PostStore) AddPost(post model.Post) {
	s.Posts.Update(func(posts []model.Post) []model.Post {
		out := make([]model.Post, 0, len(posts)+1)
		out = append(out, post)
		return append(out, posts...)
	})
}

func (s *PostStore) SetLoading(loading bool) {
	s.Loading.Set(loading)
}

func (s *PostStore) SetError(err *string) {
	s.Error.Set(err)
}

// PostsCount returns the current number of posts.
func (s *PostStore) PostsCount() int {
	return len(s.Posts.Get())
}

// PostsCountValue exposes the count as an observable value.
func (s *PostStore) PostsCountValue() reactive.Readable[int] {
	return s.count
}

func (s *PostStore) observables() []reactive.Observable {
	return []reactive.Observable{s.Posts, s.Loading, s.Error}
}
