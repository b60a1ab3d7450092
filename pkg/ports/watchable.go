package ports

import "context"

// Watchable defines an interface for stores that can notify about changes.
// This is used by the watch command to regenerate stubs on save.
type Watchable interface {
	// Watch returns a channel that receives the name of every script written
	// or created after the call. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
