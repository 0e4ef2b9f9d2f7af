package event

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/Parshu2496/cosmic-bites/pkg/common/domain"
)

type Handler func(event domain.Event) error

var _ domain.EventDispatcher = &Bus{}

// Bus delivers every dispatched event to all subscribed handlers, synchronously
// and in subscription order.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id      int
	handler Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it again.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) Dispatch(event domain.Event) error {
	b.mu.Lock()
	handlers := make([]subscription, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	var result *multierror.Error
	for _, s := range handlers {
		if err := s.handler(event); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.handlers {
		if s.id == id {
			b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
			return
		}
	}
}
