package action

import "github.com/odvcencio/furry-feed/model"

// Change describes a committed write.
type Change struct {
	// Action is the submitted action, or nil when the write came from a
	// direct setter on an observable store.
	Action Action
	Field  Field
	// State is the container snapshot right after the write.
	State model.AppState
}

// ChangeFunc receives committed writes.
type ChangeFunc func(Change)
