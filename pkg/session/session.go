package session

import (
	"github.com/sirupsen/logrus"

	"github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/common/infrastructure/event"
)

// Session owns the cart of one user session together with the loop that
// serializes access to it and the bus its change events are published on.
type Session struct {
	loop *Loop
	bus  *event.Bus
	cart service.Cart
}

func New(logger logrus.FieldLogger) *Session {
	bus := event.NewBus()
	return &Session{
		loop: NewLoop(),
		bus:  bus,
		cart: service.NewCart(bus, logger),
	}
}

// Do runs fn against the cart on the session loop and waits for it.
func (s *Session) Do(fn func(cart service.Cart)) error {
	return s.loop.Do(func() { fn(s.cart) })
}

func (s *Session) Post(fn func(cart service.Cart)) bool {
	return s.loop.Post(func() { fn(s.cart) })
}

// Subscribe registers h for cart change events. Handlers run on the session
// loop, so they may read the cart directly but must not call Do.
func (s *Session) Subscribe(h event.Handler) (unsubscribe func()) {
	return s.bus.Subscribe(h)
}

func (s *Session) Loop() *Loop {
	return s.loop
}

func (s *Session) Cart() service.Cart {
	return s.cart
}

func (s *Session) Close() {
	s.loop.Close()
}
