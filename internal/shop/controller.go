package shop

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/taazafoods/taaza-cli/internal/api"
	"github.com/taazafoods/taaza-cli/internal/spinner"
)

// Backend is the slice of the ordering API the controller drives.
// *api.Client satisfies it; tests substitute fakes.
type Backend interface {
	Categories(ctx context.Context) ([]api.Category, error)
	Items(ctx context.Context, category string) ([]api.Item, error)
	CreateSession(ctx context.Context, req api.CreateSessionRequest) (*api.Session, error)
	AddToCart(ctx context.Context, req api.AddToCartRequest) ([]api.CartLine, error)
	RemoveFromCart(ctx context.Context, req api.RemoveFromCartRequest) ([]api.CartLine, error)
	ViewCart(ctx context.Context, sessionID string) (*api.CartView, error)
	Checkout(ctx context.Context, req api.CheckoutRequest) error
	ResetSession(ctx context.Context, sessionID string) error
}

// PlacedOrder is the local record of a successfully checked-out cart.
type PlacedOrder struct {
	CustomerName  string
	Mobile        string
	Address       string
	PaymentMethod string
	Total         float64
	Lines         []api.CartLine
}

// OrderRecorder persists placed orders locally. A nil recorder disables
// recording; recording failures never fail the checkout.
type OrderRecorder interface {
	RecordOrder(ctx context.Context, o PlacedOrder) error
}

// RegistrationForm carries the registration fields before validation.
type RegistrationForm struct {
	Name    string
	Mobile  string
	Address string
}

// Options configure a Controller.
type Options struct {
	CountryCode   string
	CurrencyLabel string
	Verbose       bool
	Recorder      OrderRecorder
	Spinner       spinner.Spinner
}

// Controller owns the client-side shopping state and renders every panel
// to its writer. State lives on the struct rather than in package globals
// so each handler's effects stay explicit.
//
// Invariants: at most one item id is selected at a time; sessionID is
// empty until StartSession succeeds and never changes afterwards within a
// run; the backend owns all cart arithmetic.
type Controller struct {
	backend Backend
	out     io.Writer
	opts    Options

	sessionID        string
	user             api.User
	categories       []api.Category
	selectedCategory string
	selectedItemID   string
	items            []api.Item
	cart             []api.CartLine
	checkoutOpen     bool
	userInfoErr      error
}

// NewController creates a controller writing rendered panels to out.
func NewController(backend Backend, out io.Writer, opts Options) *Controller {
	if opts.CountryCode == "" {
		opts.CountryCode = "+92"
	}
	if opts.CurrencyLabel == "" {
		opts.CurrencyLabel = "Rs"
	}
	return &Controller{backend: backend, out: out, opts: opts}
}

// SessionID returns the active session id, empty before registration.
func (c *Controller) SessionID() string { return c.sessionID }

// CurrentItems returns the items of the open category as last loaded.
func (c *Controller) CurrentItems() []api.Item { return c.items }

func (c *Controller) spinStart(msg string) {
	if c.opts.Spinner != nil {
		c.opts.Spinner.Start(msg)
	}
}

func (c *Controller) spinStop() {
	if c.opts.Spinner != nil {
		c.opts.Spinner.Stop()
	}
}

// FetchCategories replaces the cached category list and renders it
// numbered from 1. Failures render inline; there is no retry.
func (c *Controller) FetchCategories(ctx context.Context) error {
	c.spinStart("Fetching categories")
	cats, err := c.backend.Categories(ctx)
	c.spinStop()
	if err != nil {
		renderStatus(c.out, "Could not load categories: "+err.Error())
		return err
	}
	c.categories = cats
	renderCategories(c.out, cats)
	return nil
}

// OpenCategoryByNumber opens the n-th category of the rendered list.
// Out-of-range numbers alert and issue no network call.
func (c *Controller) OpenCategoryByNumber(ctx context.Context, n int) error {
	if n < 1 || n > len(c.categories) {
		renderAlert(c.out, "Invalid category number")
		return fmt.Errorf("invalid category number: %d", n)
	}
	c.selectedCategory = c.categories[n-1].Name
	return c.LoadItems(ctx, c.selectedCategory)
}

// LoadItems fetches and renders the items of a category. The row matching
// the selected item id renders expanded, everything else collapsed. Empty
// responses render an informational line, not an error.
func (c *Controller) LoadItems(ctx context.Context, category string) error {
	c.spinStart("Loading items")
	items, err := c.backend.Items(ctx, category)
	c.spinStop()
	if err != nil {
		renderStatus(c.out, "Could not load items: "+err.Error())
		return err
	}
	c.items = items
	if len(items) == 0 {
		renderInfo(c.out, "No items available in "+category+".")
		return nil
	}
	renderItems(c.out, items, c.selectedItemID, c.opts.CurrencyLabel)
	return nil
}

// SelectItem expands the item with the given id and re-renders the list.
// Selecting a new id implicitly collapses the previous one.
func (c *Controller) SelectItem(id string) {
	c.selectedItemID = id
	renderItems(c.out, c.items, c.selectedItemID, c.opts.CurrencyLabel)
}

// Back leaves the open category, collapsing any selection.
func (c *Controller) Back() {
	c.selectedCategory = ""
	c.selectedItemID = ""
	c.items = nil
}

// clampQty bounds a quantity to [1, 100]; anything unusable becomes 1.
func clampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	if qty > 100 {
		return 100
	}
	return qty
}

// AddToCart sends an item to the session cart and renders the backend's
// authoritative cart. On success the selection clears and the item list
// re-renders collapsed; on failure all state stays as it was.
func (c *Controller) AddToCart(ctx context.Context, item api.Item, qty int) error {
	if c.sessionID == "" {
		renderAlert(c.out, "Please register before adding items to your cart")
		return fmt.Errorf("no active session")
	}

	qty = clampQty(qty)
	price := 0.0
	if item.Price != nil {
		price = *item.Price
	}

	c.spinStart("Adding to cart")
	cart, err := c.backend.AddToCart(ctx, api.AddToCartRequest{
		SessionID: c.sessionID,
		ItemName:  item.Name,
		Price:     price,
		Qty:       qty,
	})
	c.spinStop()
	if err != nil {
		renderStatus(c.out, "Could not add to cart: "+err.Error())
		return err
	}

	renderInfo(c.out, fmt.Sprintf("Added %s x%d to your cart.", item.Name, qty))
	c.RenderCart(ctx, cart)
	c.selectedItemID = ""
	return c.LoadItems(ctx, c.selectedCategory)
}

// RemoveFromCart removes qty units of a named item and renders the
// backend's authoritative cart.
func (c *Controller) RemoveFromCart(ctx context.Context, name string, qty int) error {
	if c.sessionID == "" {
		renderAlert(c.out, "Please register before changing your cart")
		return fmt.Errorf("no active session")
	}

	c.spinStart("Updating cart")
	cart, err := c.backend.RemoveFromCart(ctx, api.RemoveFromCartRequest{
		SessionID: c.sessionID,
		ItemName:  name,
		Qty:       clampQty(qty),
	})
	c.spinStop()
	if err != nil {
		renderStatus(c.out, "Could not update cart: "+err.Error())
		return err
	}
	c.RenderCart(ctx, cart)
	return nil
}

// RenderCart caches and draws the given cart lines, then refreshes the
// customer display copy alongside. The refresh failure never interrupts
// the calling action; verbose mode reports it.
func (c *Controller) RenderCart(ctx context.Context, cart []api.CartLine) {
	c.cart = cart
	renderCart(c.out, cart, c.opts.CurrencyLabel)
	c.refreshUserInfo(ctx)
}

func (c *Controller) refreshUserInfo(ctx context.Context) {
	if c.sessionID == "" {
		return
	}
	view, err := c.backend.ViewCart(ctx, c.sessionID)
	if err != nil {
		c.userInfoErr = err
		if c.opts.Verbose {
			renderStatus(c.out, "note: could not refresh user info: "+err.Error())
		}
		return
	}
	c.user = view.User
}

// StartSession validates the form client-side, registers the customer and
// switches from the registration panel to the shopping panels. The mobile
// check blocks the network call entirely when it fails.
func (c *Controller) StartSession(ctx context.Context, form RegistrationForm) error {
	if c.sessionID != "" {
		return fmt.Errorf("session already active")
	}

	mobile := strings.TrimSpace(form.Mobile)
	if err := ValidateMobile(mobile); err != nil {
		renderFieldError(c.out, "mobile", err.Error())
		return err
	}

	c.spinStart("Creating session")
	sess, err := c.backend.CreateSession(ctx, api.CreateSessionRequest{
		Name:        strings.TrimSpace(form.Name),
		Mobile:      mobile,
		Address:     strings.TrimSpace(form.Address),
		CountryCode: c.opts.CountryCode,
	})
	c.spinStop()
	if err != nil {
		renderAlert(c.out, "Registration failed: "+err.Error())
		return err
	}

	c.sessionID = sess.SessionID
	c.user = sess.User
	renderUser(c.out, c.user)

	// The category fetch failing renders its own inline error and does not
	// undo the freshly opened session.
	_ = c.FetchCategories(ctx)
	c.RenderCart(ctx, nil)
	return nil
}

// ViewCartNow re-fetches and re-renders the cart for the active session.
func (c *Controller) ViewCartNow(ctx context.Context) error {
	if c.sessionID == "" {
		renderAlert(c.out, "Please register before viewing your cart")
		return fmt.Errorf("no active session")
	}

	c.spinStart("Loading cart")
	view, err := c.backend.ViewCart(ctx, c.sessionID)
	c.spinStop()
	if err != nil {
		renderStatus(c.out, "Could not load cart: "+err.Error())
		return err
	}
	c.user = view.User
	c.cart = view.Cart
	renderCart(c.out, view.Cart, c.opts.CurrencyLabel)
	return nil
}

// OpenCheckout reveals the checkout panel. No network call happens here.
func (c *Controller) OpenCheckout() {
	c.checkoutOpen = true
	renderCheckout(c.out)
}

// ConfirmOrder places the order with the chosen payment method. On success
// the cart display clears and the checkout panel closes; on failure the
// panel stays open for a retry.
func (c *Controller) ConfirmOrder(ctx context.Context, paymentMethod string) error {
	if c.sessionID == "" {
		renderAlert(c.out, "Please register before checking out")
		return fmt.Errorf("no active session")
	}

	c.spinStart("Placing order")
	err := c.backend.Checkout(ctx, api.CheckoutRequest{
		SessionID:     c.sessionID,
		PaymentMethod: paymentMethod,
	})
	c.spinStop()
	if err != nil {
		renderStatus(c.out, "Checkout failed: "+err.Error())
		return err
	}

	if c.opts.Recorder != nil {
		ord := PlacedOrder{
			CustomerName:  c.user.Name,
			Mobile:        c.user.Mobile,
			Address:       c.user.Address,
			PaymentMethod: paymentMethod,
			Total:         cartTotal(c.cart),
			Lines:         c.cart,
		}
		if rerr := c.opts.Recorder.RecordOrder(ctx, ord); rerr != nil && c.opts.Verbose {
			renderStatus(c.out, "note: could not record order locally: "+rerr.Error())
		}
	}

	renderInfo(c.out, "✅ Order placed! Thank you for shopping with Taaza.")
	c.cart = nil
	renderCart(c.out, nil, c.opts.CurrencyLabel)
	c.checkoutOpen = false
	return nil
}

// EndSession clears the session on the backend, best effort. The local
// session id stays set; the program exits after this.
func (c *Controller) EndSession(ctx context.Context) {
	if c.sessionID == "" {
		return
	}
	_ = c.backend.ResetSession(ctx, c.sessionID)
	renderInfo(c.out, "👋 Thanks for visiting Taaza. See you again!")
}

// cartTotal sums subtotals for display and local recording only; the
// backend remains authoritative for all pricing.
func cartTotal(lines []api.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal
	}
	return total
}
