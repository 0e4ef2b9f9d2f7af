package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	cartservice "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
	catalogmodel "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
	catalogservice "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/checkout"
	"github.com/Parshu2496/cosmic-bites/pkg/session"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  restaurants [filter=<all|free-delivery|top-rated|fastest>] [search...]
  menu <restaurant-id> [category]
  add <item-id>          add one unit of a menu item
  inc <item-id>          increase quantity by one
  dec <item-id>          decrease quantity by one, removing at zero
  set <item-id> <qty>    set quantity, zero or less removes the line
  rm <item-id>           remove a line
  clear                  empty the cart
  cart                   show cart and totals
  checkout               place the order and wait for it
  orders                 list placed and past orders
  help
  quit
`

type Shell struct {
	in       io.Reader
	out      io.Writer
	session  *session.Session
	catalog  catalogservice.CatalogService
	checkout *checkout.Simulator
	pricing  cartservice.PricingPolicy
}

func New(in io.Reader, out io.Writer, s *session.Session, catalog catalogservice.CatalogService, sim *checkout.Simulator, pricing cartservice.PricingPolicy) *Shell {
	return &Shell{
		in:       in,
		out:      out,
		session:  s,
		catalog:  catalog,
		checkout: sim,
		pricing:  pricing,
	}
}

// Run reads commands line by line until quit, end of input or ctx is done.
// Command errors are printed and do not stop the shell.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprint(s.out, "Cosmic Bites. Type help for commands.\n> ")

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		err := s.Exec(ctx, scanner.Text())
		if err == errQuit {
			return nil
		}
		if err != nil {
			if errors.Cause(err) == session.ErrLoopClosed {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		fmt.Fprint(s.out, "> ")
	}
	return errors.Wrap(scanner.Err(), "read input")
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprint(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "restaurants":
		return s.restaurants(args)
	case "menu":
		return s.menu(args)
	case "add":
		return s.add(args)
	case "inc", "dec":
		return s.step(cmd, args)
	case "set":
		return s.set(args)
	case "rm":
		if len(args) != 1 {
			return errors.New("usage: rm <item-id>")
		}
		return s.mutate(func(cart cartservice.Cart) { cart.RemoveItem(args[0]) })
	case "clear":
		return s.mutate(func(cart cartservice.Cart) { cart.ClearCart() })
	case "cart":
		return s.mutate(func(cartservice.Cart) {})
	case "checkout":
		return s.placeOrder(ctx)
	case "orders":
		return s.orders()
	default:
		return errors.Errorf("unknown command %q, type help", cmd)
	}
}

func (s *Shell) restaurants(args []string) error {
	filter := catalogservice.FilterAll
	var query []string
	for _, arg := range args {
		if name, ok := strings.CutPrefix(arg, "filter="); ok {
			filter = catalogservice.ParseFilter(strings.ReplaceAll(name, "-", " "))
			continue
		}
		query = append(query, arg)
	}

	restaurants := s.catalog.Restaurants(strings.Join(query, " "), filter)
	if len(restaurants) == 0 {
		fmt.Fprintln(s.out, "no restaurants found")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, r := range restaurants {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\t%s\n", r.ID, r.Name, r.Rating, r.Cuisine, r.DeliveryTime, r.DeliveryFee)
	}
	return w.Flush()
}

func (s *Shell) menu(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: menu <restaurant-id> [category]")
	}
	restaurant, err := s.catalog.Restaurant(args[0])
	if err != nil {
		return errors.Wrapf(err, "restaurant %q", args[0])
	}
	items, err := s.catalog.MenuByCategory(restaurant.ID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s (%s)\n", restaurant.Name, restaurant.Cuisine)
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		veg := ""
		if item.IsVegetarian {
			veg = "veg"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Name, cartmodel.FormatCents(item.PriceCents), item.Category, veg)
	}
	return w.Flush()
}

func (s *Shell) add(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: add <item-id>")
	}
	item, err := s.catalog.MenuItem(args[0])
	if err != nil {
		return errors.Wrapf(err, "item %q", args[0])
	}
	return s.mutate(func(cart cartservice.Cart) { cart.AddItem(item) })
}

func (s *Shell) step(cmd string, args []string) error {
	if len(args) != 1 {
		return errors.Errorf("usage: %s <item-id>", cmd)
	}
	delta := 1
	if cmd == "dec" {
		delta = -1
	}

	var found bool
	err := s.mutate(func(cart cartservice.Cart) {
		line, ok := cart.Line(args[0])
		if !ok {
			return
		}
		found = true
		cart.UpdateQuantity(line.Item.ID, line.Quantity+delta)
	})
	if err == nil && !found {
		fmt.Fprintf(s.out, "%s is not in the cart\n", args[0])
	}
	return err
}

func (s *Shell) set(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <item-id> <qty>")
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(err, "invalid quantity %q", args[1])
	}
	return s.mutate(func(cart cartservice.Cart) { cart.UpdateQuantity(args[0], quantity) })
}

// mutate applies fn on the session loop and prints the cart it left behind.
func (s *Shell) mutate(fn func(cart cartservice.Cart)) error {
	var lines []cartmodel.CartLine
	var quote cartservice.Quote
	var totalItems int
	err := s.session.Do(func(cart cartservice.Cart) {
		fn(cart)
		lines = cart.Items()
		totalItems = cart.TotalItems()
		quote = s.pricing.Quote(cart.TotalPriceCents())
	})
	if err != nil {
		return err
	}
	s.printCart(lines, totalItems, quote)
	return nil
}

func (s *Shell) printCart(lines []cartmodel.CartLine, totalItems int, quote cartservice.Quote) {
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "cart is empty")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, line := range lines {
		fmt.Fprintf(w, "%s\t%s\tx%d\t%s\t\n", line.Item.ID, line.Item.Name, line.Quantity, cartmodel.FormatCents(line.LineTotalCents()))
	}
	_ = w.Flush()

	fee := cartmodel.FormatCents(quote.DeliveryFeeCents)
	if quote.FreeDelivery {
		fee = "Free"
	}
	fmt.Fprintf(s.out, "items: %d  subtotal: %s  delivery: %s  total: %s\n",
		totalItems, cartmodel.FormatCents(quote.SubtotalCents), fee, cartmodel.FormatCents(quote.TotalCents))
	if !quote.FreeDelivery && quote.AmountToFreeDeliveryCents > 0 {
		fmt.Fprintf(s.out, "add %s more for free delivery\n", cartmodel.FormatCents(quote.AmountToFreeDeliveryCents))
	}
}

func (s *Shell) placeOrder(ctx context.Context) error {
	var attempt *checkout.Attempt
	var placeErr error
	if err := s.session.Do(func(cartservice.Cart) {
		attempt, placeErr = s.checkout.PlaceOrder(ctx)
	}); err != nil {
		return err
	}
	if placeErr != nil {
		return placeErr
	}

	fmt.Fprintf(s.out, "placing order for %s...\n", cartmodel.FormatCents(attempt.Quote().TotalCents))
	select {
	case <-attempt.Done():
	case <-ctx.Done():
		attempt.Cancel()
		<-attempt.Done()
	}

	receipt, ok := attempt.Receipt()
	if !ok {
		if err := attempt.Err(); err != nil {
			return errors.Wrap(err, "order failed")
		}
		fmt.Fprintln(s.out, "order cancelled, cart kept")
		return nil
	}
	fmt.Fprintf(s.out, "order %s placed: %s, total %s\n",
		receipt.OrderID, strings.Join(receipt.ItemNames, ", "), cartmodel.FormatCents(receipt.TotalCents))
	return nil
}

func (s *Shell) orders() error {
	var placed []checkout.Receipt
	if err := s.session.Do(func(cartservice.Cart) { placed = s.checkout.Placed() }); err != nil {
		return err
	}

	orders := make([]catalogmodel.Order, 0, len(placed))
	for _, receipt := range placed {
		orders = append(orders, receipt.AsOrder())
	}
	orders = append(orders, s.catalog.PastOrders()...)

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.Date, o.Status, cartmodel.FormatCents(o.TotalCents), strings.Join(o.ItemNames, ", "))
	}
	return w.Flush()
}
