package reactive

// Readable exposes a read-only observable value.
type Readable[T any] interface {
	Observable
	Get() T
	Name() string
	SubscribeWithScheduler(scheduler Scheduler, fn Listener) func()
}

// Writable exposes a read/write observable value.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}

var (
	_ Writable[int] = (*Field[int])(nil)
	_ Readable[int] = (*Derived[int])(nil)
)
