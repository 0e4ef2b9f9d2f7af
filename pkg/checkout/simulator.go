package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
	catalogmodel "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
)

var ErrEmptyCart = errors.New("cannot place an order for an empty cart")

const DefaultDelay = 2 * time.Second

type Status int

const (
	Pending Status = iota
	Placed
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Placed:
		return "placed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Receipt struct {
	OrderID          string
	ItemNames        []string
	SubtotalCents    int64
	DeliveryFeeCents int64
	TotalCents       int64
	PlacedAt         time.Time
}

func (r Receipt) AsOrder() catalogmodel.Order {
	return catalogmodel.Order{
		ID:         r.OrderID,
		ItemNames:  append([]string(nil), r.ItemNames...),
		TotalCents: r.TotalCents,
		Status:     catalogmodel.InProgress,
		Date:       r.PlacedAt.Format("Jan 2, 2006"),
	}
}

// Runner executes fn on the goroutine that owns the cart.
type Runner interface {
	Post(fn func()) bool
}

// Simulator places mock orders: it captures the cart total, waits a fixed
// delay and then clears the cart. No order leaves the process.
//
// PlaceOrder, Current and Placed must be called from the Runner's goroutine.
type Simulator struct {
	runner  Runner
	cart    service.Cart
	pricing service.PricingPolicy
	delay   time.Duration
	logger  logrus.FieldLogger

	newID func() (uuid.UUID, error)
	now   func() time.Time

	current *Attempt
	placed  []Receipt
}

func NewSimulator(runner Runner, cart service.Cart, pricing service.PricingPolicy, delay time.Duration, logger logrus.FieldLogger) *Simulator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Simulator{
		runner:  runner,
		cart:    cart,
		pricing: pricing,
		delay:   delay,
		logger:  logger,
		newID:   uuid.NewRandom,
		now:     time.Now,
	}
}

// PlaceOrder starts a new attempt for the current cart contents. A pending
// attempt is cancelled first. Cancelling ctx cancels the attempt.
func (s *Simulator) PlaceOrder(ctx context.Context) (*Attempt, error) {
	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if s.current != nil && s.current.Cancel() {
		s.logger.Info("pending checkout replaced by a new one")
	}

	names := lineNames(s.cart.Items())
	a := &Attempt{
		quote:       s.pricing.Quote(s.cart.TotalPriceCents()),
		itemNames:   names,
		submittedAt: s.now(),
		done:        make(chan struct{}),
	}

	a.mu.Lock()
	a.timer = time.AfterFunc(s.delay, func() {
		if !s.runner.Post(func() { s.complete(a) }) {
			a.Cancel()
		}
	})
	a.stopCtx = context.AfterFunc(ctx, func() { a.Cancel() })
	a.mu.Unlock()

	s.current = a
	s.logger.WithFields(logrus.Fields{
		"items":       len(names),
		"total_cents": a.quote.TotalCents,
		"delay":       s.delay,
	}).Info("checkout submitted")
	return a, nil
}

// Current returns the most recent attempt, or nil.
func (s *Simulator) Current() *Attempt {
	return s.current
}

// Placed lists receipts of orders completed in this session, newest first.
func (s *Simulator) Placed() []Receipt {
	receipts := make([]Receipt, 0, len(s.placed))
	for i := len(s.placed) - 1; i >= 0; i-- {
		receipts = append(receipts, s.placed[i])
	}
	return receipts
}

func (s *Simulator) complete(a *Attempt) {
	id, err := s.newID()
	if err != nil {
		a.fail(errors.Wrap(err, "generate order id"))
		s.logger.WithError(err).Error("checkout failed")
		return
	}

	receipt := Receipt{
		OrderID:          "ORD-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]),
		ItemNames:        a.itemNames,
		SubtotalCents:    a.quote.SubtotalCents,
		DeliveryFeeCents: a.quote.DeliveryFeeCents,
		TotalCents:       a.quote.TotalCents,
		PlacedAt:         s.now(),
	}
	if !a.place(receipt) {
		return
	}

	s.placed = append(s.placed, receipt)
	s.cart.ClearCart()

	s.logger.WithFields(logrus.Fields{
		"order_id":    receipt.OrderID,
		"total_cents": receipt.TotalCents,
	}).Info("order placed")
}

// Attempt is one submitted checkout. Its methods are safe to call from any
// goroutine.
type Attempt struct {
	quote       service.Quote
	itemNames   []string
	submittedAt time.Time

	mu      sync.Mutex
	status  Status
	receipt Receipt
	err     error
	timer   *time.Timer
	stopCtx func() bool
	done    chan struct{}
}

// Done is closed once the attempt is placed, cancelled or failed.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

func (a *Attempt) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Attempt) Receipt() (Receipt, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.receipt, a.status == Placed
}

func (a *Attempt) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Quote is the pricing captured when the attempt was submitted.
func (a *Attempt) Quote() service.Quote {
	return a.quote
}

func (a *Attempt) ItemNames() []string {
	return append([]string(nil), a.itemNames...)
}

func (a *Attempt) SubmittedAt() time.Time {
	return a.submittedAt
}

// Cancel stops a pending attempt. It reports whether the attempt was still
// pending; placed attempts cannot be cancelled.
func (a *Attempt) Cancel() bool {
	return a.finish(Cancelled, Receipt{}, nil)
}

func (a *Attempt) place(r Receipt) bool {
	return a.finish(Placed, r, nil)
}

func (a *Attempt) fail(err error) bool {
	return a.finish(Failed, Receipt{}, err)
}

func (a *Attempt) finish(status Status, r Receipt, err error) bool {
	a.mu.Lock()
	if a.status != Pending {
		a.mu.Unlock()
		return false
	}
	a.status = status
	a.receipt = r
	a.err = err
	if a.timer != nil {
		a.timer.Stop()
	}
	stopCtx := a.stopCtx
	close(a.done)
	a.mu.Unlock()

	if stopCtx != nil {
		stopCtx()
	}
	return true
}

func lineNames(lines []cartmodel.CartLine) []string {
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		names = append(names, line.Item.Name)
	}
	return names
}
