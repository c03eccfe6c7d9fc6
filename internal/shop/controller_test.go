package shop

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/taazafoods/taaza-cli/internal/api"
)

func fptr(v float64) *float64 { return &v }

// fakeBackend counts calls and returns canned data so tests can assert
// exactly which operations reached the network.
type fakeBackend struct {
	categories []api.Category
	items      []api.Item
	cart       []api.CartLine
	session    *api.Session
	view       *api.CartView

	categoriesErr error
	itemsErr      error
	createErr     error
	addErr        error
	viewErr       error
	checkoutErr   error

	calls      map[string]int
	lastAddReq api.AddToCartRequest
}

func (f *fakeBackend) record(name string) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeBackend) Categories(ctx context.Context) ([]api.Category, error) {
	f.record("Categories")
	return f.categories, f.categoriesErr
}

func (f *fakeBackend) Items(ctx context.Context, category string) ([]api.Item, error) {
	f.record("Items")
	return f.items, f.itemsErr
}

func (f *fakeBackend) CreateSession(ctx context.Context, req api.CreateSessionRequest) (*api.Session, error) {
	f.record("CreateSession")
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.session, nil
}

func (f *fakeBackend) AddToCart(ctx context.Context, req api.AddToCartRequest) ([]api.CartLine, error) {
	f.record("AddToCart")
	f.lastAddReq = req
	if f.addErr != nil {
		return nil, f.addErr
	}
	return f.cart, nil
}

func (f *fakeBackend) RemoveFromCart(ctx context.Context, req api.RemoveFromCartRequest) ([]api.CartLine, error) {
	f.record("RemoveFromCart")
	return f.cart, nil
}

func (f *fakeBackend) ViewCart(ctx context.Context, sessionID string) (*api.CartView, error) {
	f.record("ViewCart")
	if f.viewErr != nil {
		return nil, f.viewErr
	}
	if f.view != nil {
		return f.view, nil
	}
	view := &api.CartView{Cart: f.cart}
	if f.session != nil {
		view.User = f.session.User
	}
	return view, nil
}

func (f *fakeBackend) Checkout(ctx context.Context, req api.CheckoutRequest) error {
	f.record("Checkout")
	return f.checkoutErr
}

func (f *fakeBackend) ResetSession(ctx context.Context, sessionID string) error {
	f.record("ResetSession")
	return nil
}

func newTestController(backend *fakeBackend) (*Controller, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewController(backend, out, Options{}), out
}

func snacks() []api.Item {
	return []api.Item{
		{ID: "itm-samosa", Name: "Samosa", Price: fptr(30)},
		{ID: "itm-pakora", Name: "Pakora", Price: fptr(50)},
		{ID: "itm-special", Name: "Seasonal Special"},
	}
}

func TestOpenCategoryByNumberOutOfRange(t *testing.T) {
	backend := &fakeBackend{categories: []api.Category{{Name: "Snacks"}, {Name: "Drinks"}}}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.FetchCategories(ctx); err != nil {
		t.Fatalf("FetchCategories failed: %v", err)
	}

	for _, n := range []int{0, -1, 3, 100} {
		out.Reset()
		err := ctrl.OpenCategoryByNumber(ctx, n)
		if err == nil {
			t.Errorf("OpenCategoryByNumber(%d) = nil, want error", n)
		}
		if !strings.Contains(out.String(), "Invalid category number") {
			t.Errorf("OpenCategoryByNumber(%d): output %q missing alert", n, out.String())
		}
	}
	if backend.calls["Items"] != 0 {
		t.Errorf("out-of-range numbers issued %d item fetches, want 0", backend.calls["Items"])
	}
}

func TestOpenCategoryByNumberValid(t *testing.T) {
	backend := &fakeBackend{
		categories: []api.Category{{Name: "Snacks"}, {Name: "Drinks"}},
		items:      snacks(),
	}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.FetchCategories(ctx); err != nil {
		t.Fatalf("FetchCategories failed: %v", err)
	}
	// Category list is numbered from 1.
	if !strings.Contains(out.String(), "1. Snacks") || !strings.Contains(out.String(), "2. Drinks") {
		t.Errorf("category list not numbered from 1: %q", out.String())
	}

	if err := ctrl.OpenCategoryByNumber(ctx, 2); err != nil {
		t.Fatalf("OpenCategoryByNumber(2) failed: %v", err)
	}
	if ctrl.selectedCategory != "Drinks" {
		t.Errorf("selectedCategory = %q, want Drinks", ctrl.selectedCategory)
	}
	if backend.calls["Items"] != 1 {
		t.Errorf("Items called %d times, want 1", backend.calls["Items"])
	}
}

func TestStartSessionInvalidMobileNoNetworkCall(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, out := newTestController(backend)

	err := ctrl.StartSession(context.Background(), RegistrationForm{
		Name: "Ada", Mobile: "12345", Address: "Lahore",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if backend.calls["CreateSession"] != 0 {
		t.Errorf("CreateSession called %d times, want 0", backend.calls["CreateSession"])
	}
	if !strings.Contains(out.String(), "mobile") {
		t.Errorf("output %q missing field error", out.String())
	}
	if ctrl.SessionID() != "" {
		t.Errorf("sessionID = %q, want empty", ctrl.SessionID())
	}
}

func TestStartSessionHappyPath(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{
			SessionID: "sess_1",
			User:      api.User{Name: "Ada", Mobile: "+923123456789", Address: "Lahore"},
		},
		categories: []api.Category{{Name: "Snacks"}},
	}
	ctrl, out := newTestController(backend)

	err := ctrl.StartSession(context.Background(), RegistrationForm{
		Name: "Ada", Mobile: "3123456789", Address: "Lahore",
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if ctrl.SessionID() != "sess_1" {
		t.Errorf("sessionID = %q, want sess_1", ctrl.SessionID())
	}
	if backend.calls["CreateSession"] != 1 {
		t.Errorf("CreateSession called %d times, want 1", backend.calls["CreateSession"])
	}
	// The shopping panels replace the registration form: user info, the
	// category list (fetched exactly once) and an empty cart.
	if backend.calls["Categories"] != 1 {
		t.Errorf("Categories called %d times, want exactly 1", backend.calls["Categories"])
	}
	if !strings.Contains(out.String(), "Ada") {
		t.Errorf("output missing user info: %q", out.String())
	}
	if !strings.Contains(out.String(), "1. Snacks") {
		t.Errorf("output missing category list: %q", out.String())
	}
	if !strings.Contains(out.String(), "Your cart is empty") {
		t.Errorf("output missing empty cart render: %q", out.String())
	}
}

func TestStartSessionTwiceRejected(t *testing.T) {
	backend := &fakeBackend{session: &api.Session{SessionID: "sess_1"}}
	ctrl, _ := newTestController(backend)

	form := RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}
	if err := ctrl.StartSession(context.Background(), form); err != nil {
		t.Fatalf("first StartSession failed: %v", err)
	}
	if err := ctrl.StartSession(context.Background(), form); err == nil {
		t.Error("second StartSession should fail: session id never changes within a run")
	}
	if backend.calls["CreateSession"] != 1 {
		t.Errorf("CreateSession called %d times, want 1", backend.calls["CreateSession"])
	}
}

func TestSelectItemSingleExpansion(t *testing.T) {
	backend := &fakeBackend{items: snacks()}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.LoadItems(ctx, "Snacks"); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if strings.Count(out.String(), "▶") != 0 {
		t.Errorf("initial render should have no expanded rows: %q", out.String())
	}

	out.Reset()
	ctrl.SelectItem("itm-pakora")
	if got := strings.Count(out.String(), "▶"); got != 1 {
		t.Errorf("expanded rows = %d, want exactly 1", got)
	}
	if !strings.Contains(out.String(), "▶ Pakora") {
		t.Errorf("expanded row should be Pakora: %q", out.String())
	}

	// Selecting another item implicitly deselects the first.
	out.Reset()
	ctrl.SelectItem("itm-samosa")
	if got := strings.Count(out.String(), "▶"); got != 1 {
		t.Errorf("expanded rows after reselect = %d, want exactly 1", got)
	}
	if !strings.Contains(out.String(), "▶ Samosa") {
		t.Errorf("expanded row should be Samosa: %q", out.String())
	}

	// A LoadItems following the selection keeps the single expansion.
	out.Reset()
	if err := ctrl.LoadItems(ctx, "Snacks"); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if got := strings.Count(out.String(), "▶"); got != 1 {
		t.Errorf("expanded rows after reload = %d, want exactly 1", got)
	}
}

func TestItemWithoutPriceRendersNA(t *testing.T) {
	backend := &fakeBackend{items: snacks()}
	ctrl, out := newTestController(backend)

	if err := ctrl.LoadItems(context.Background(), "Snacks"); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if !strings.Contains(out.String(), "Seasonal Special  N/A") {
		t.Errorf("missing N/A price render: %q", out.String())
	}
}

func TestRenderCartTotals(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, out := newTestController(backend)

	ctrl.RenderCart(context.Background(), []api.CartLine{
		{Name: "Tea", Qty: 2, Subtotal: 100},
	})

	if !strings.Contains(out.String(), "💰 Total: 100 Rs") {
		t.Errorf("output %q missing total line", out.String())
	}
	if !strings.Contains(out.String(), "Items in cart: 2") {
		t.Errorf("output %q missing item count", out.String())
	}
}

func TestRenderCartSumsLines(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, out := newTestController(backend)

	ctrl.RenderCart(context.Background(), []api.CartLine{
		{Name: "Tea", Qty: 2, Subtotal: 100},
		{Name: "Samosa", Qty: 3, Subtotal: 90},
	})

	if !strings.Contains(out.String(), "💰 Total: 190 Rs") {
		t.Errorf("output %q missing summed total", out.String())
	}
	if !strings.Contains(out.String(), "Items in cart: 5") {
		t.Errorf("output %q missing summed quantity", out.String())
	}
}

func TestAddToCartRequiresSession(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, out := newTestController(backend)

	err := ctrl.AddToCart(context.Background(), snacks()[0], 1)
	if err == nil {
		t.Fatal("expected error without a session")
	}
	if backend.calls["AddToCart"] != 0 {
		t.Errorf("AddToCart called %d times, want 0", backend.calls["AddToCart"])
	}
	if !strings.Contains(out.String(), "register") {
		t.Errorf("output %q missing alert", out.String())
	}
}

func TestAddToCartSuccessClearsSelection(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1", User: api.User{Name: "Ada"}},
		items:   snacks(),
		cart:    []api.CartLine{{Name: "Samosa", Price: 30, Qty: 2, Subtotal: 60}},
	}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := ctrl.LoadItems(ctx, "Snacks"); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	ctrl.SelectItem("itm-samosa")

	out.Reset()
	if err := ctrl.AddToCart(ctx, snacks()[0], 2); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	if ctrl.selectedItemID != "" {
		t.Errorf("selectedItemID = %q, want cleared", ctrl.selectedItemID)
	}
	// The re-rendered item list is fully collapsed.
	if got := strings.Count(out.String(), "▶"); got != 0 {
		t.Errorf("expanded rows after successful add = %d, want 0", got)
	}
	if !strings.Contains(out.String(), "💰 Total: 60 Rs") {
		t.Errorf("output %q missing authoritative cart total", out.String())
	}
	if backend.lastAddReq.SessionID != "sess_1" || backend.lastAddReq.ItemName != "Samosa" || backend.lastAddReq.Qty != 2 {
		t.Errorf("unexpected add request: %+v", backend.lastAddReq)
	}
	if backend.lastAddReq.Price != 30 {
		t.Errorf("add request price = %v, want 30", backend.lastAddReq.Price)
	}
}

func TestAddToCartFailureLeavesStateUnchanged(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1"},
		items:   snacks(),
		addErr:  fmt.Errorf("Session not found."),
	}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := ctrl.LoadItems(ctx, "Snacks"); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	ctrl.SelectItem("itm-pakora")

	out.Reset()
	if err := ctrl.AddToCart(ctx, snacks()[1], 1); err == nil {
		t.Fatal("expected add failure")
	}
	if ctrl.selectedItemID != "itm-pakora" {
		t.Errorf("selection changed on failure: %q", ctrl.selectedItemID)
	}
	if !strings.Contains(out.String(), "Session not found.") {
		t.Errorf("output %q missing inline error", out.String())
	}
}

func TestAddToCartQtyClampAndDefaults(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1"},
		items:   snacks(),
	}
	ctrl, _ := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	tests := []struct {
		give int
		want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		if err := ctrl.AddToCart(ctx, snacks()[0], tt.give); err != nil {
			t.Fatalf("AddToCart(%d) failed: %v", tt.give, err)
		}
		if backend.lastAddReq.Qty != tt.want {
			t.Errorf("qty %d sent as %d, want %d", tt.give, backend.lastAddReq.Qty, tt.want)
		}
	}
}

func TestAddToCartMissingPriceSendsZero(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1"},
		items:   snacks(),
	}
	ctrl, _ := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := ctrl.AddToCart(ctx, snacks()[2], 1); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if backend.lastAddReq.Price != 0 {
		t.Errorf("price = %v, want 0 for unpriced item", backend.lastAddReq.Price)
	}
}

func TestConfirmOrderRequiresSession(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, out := newTestController(backend)

	if err := ctrl.ConfirmOrder(context.Background(), "Cash on Delivery"); err == nil {
		t.Fatal("expected error without a session")
	}
	if backend.calls["Checkout"] != 0 {
		t.Errorf("Checkout called %d times, want 0", backend.calls["Checkout"])
	}
	if !strings.Contains(out.String(), "register") {
		t.Errorf("output %q missing alert", out.String())
	}
}

type captureRecorder struct {
	orders []PlacedOrder
	err    error
}

func (r *captureRecorder) RecordOrder(ctx context.Context, o PlacedOrder) error {
	r.orders = append(r.orders, o)
	return r.err
}

func TestConfirmOrderSuccess(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1", User: api.User{Name: "Ada", Mobile: "+923123456789", Address: "Lahore"}},
	}
	rec := &captureRecorder{}
	out := &bytes.Buffer{}
	ctrl := NewController(backend, out, Options{Recorder: rec})

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	ctrl.RenderCart(ctx, []api.CartLine{{Name: "Tea", Qty: 2, Subtotal: 100}})
	ctrl.OpenCheckout()

	out.Reset()
	if err := ctrl.ConfirmOrder(ctx, "Online Transfer"); err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}

	if !strings.Contains(out.String(), "Order placed") {
		t.Errorf("output %q missing confirmation", out.String())
	}
	if !strings.Contains(out.String(), "Your cart is empty") {
		t.Errorf("output %q should show the cleared cart", out.String())
	}
	if ctrl.checkoutOpen {
		t.Error("checkout panel should close on success")
	}
	if len(rec.orders) != 1 {
		t.Fatalf("recorded %d orders, want 1", len(rec.orders))
	}
	got := rec.orders[0]
	if got.PaymentMethod != "Online Transfer" || got.Total != 100 || got.CustomerName != "Ada" {
		t.Errorf("recorded order = %+v", got)
	}
}

func TestConfirmOrderFailureKeepsCheckoutOpen(t *testing.T) {
	backend := &fakeBackend{
		session:     &api.Session{SessionID: "sess_1"},
		checkoutErr: fmt.Errorf("Cart is empty."),
	}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	ctrl.OpenCheckout()

	out.Reset()
	if err := ctrl.ConfirmOrder(ctx, "Cash on Delivery"); err == nil {
		t.Fatal("expected checkout failure")
	}
	if !ctrl.checkoutOpen {
		t.Error("checkout panel should stay open for retry")
	}
	if !strings.Contains(out.String(), "Cart is empty.") {
		t.Errorf("output %q missing inline error", out.String())
	}
}

func TestViewCartNowRendersBackendCart(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1"},
		view: &api.CartView{
			Cart: []api.CartLine{{Name: "Lassi", Qty: 1, Subtotal: 90}},
			User: api.User{Name: "Ada"},
		},
	}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	out.Reset()
	if err := ctrl.ViewCartNow(ctx); err != nil {
		t.Fatalf("ViewCartNow failed: %v", err)
	}
	if !strings.Contains(out.String(), "💰 Total: 90 Rs") {
		t.Errorf("output %q missing cart total", out.String())
	}
}

func TestFetchCategoriesErrorRendersInline(t *testing.T) {
	backend := &fakeBackend{categoriesErr: fmt.Errorf("backend request failed: connection refused")}
	ctrl, out := newTestController(backend)

	if err := ctrl.FetchCategories(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if !strings.Contains(out.String(), "connection refused") {
		t.Errorf("output %q missing error text", out.String())
	}
	// One attempt only, no retry.
	if backend.calls["Categories"] != 1 {
		t.Errorf("Categories called %d times, want 1", backend.calls["Categories"])
	}
}

func TestLoadItemsEmptyRendersInfo(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, out := newTestController(backend)

	if err := ctrl.LoadItems(context.Background(), "Drinks"); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if !strings.Contains(out.String(), "No items available in Drinks.") {
		t.Errorf("output %q missing empty-category message", out.String())
	}
}

func TestUserInfoRefreshFailureIsSilent(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1"},
		viewErr: fmt.Errorf("Session not found."),
	}
	ctrl, out := newTestController(backend)

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	out.Reset()
	ctrl.RenderCart(ctx, nil)
	if strings.Contains(out.String(), "could not refresh user info") {
		t.Errorf("refresh failure should be silent without verbose: %q", out.String())
	}
	if ctrl.userInfoErr == nil {
		t.Error("refresh failure should still be recorded")
	}
}

func TestUserInfoRefreshFailureVerbose(t *testing.T) {
	backend := &fakeBackend{
		session: &api.Session{SessionID: "sess_1"},
		viewErr: fmt.Errorf("Session not found."),
	}
	out := &bytes.Buffer{}
	ctrl := NewController(backend, out, Options{Verbose: true})

	ctx := context.Background()
	if err := ctrl.StartSession(ctx, RegistrationForm{Name: "Ada", Mobile: "3123456789", Address: "Lahore"}); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	out.Reset()
	ctrl.RenderCart(ctx, nil)
	if !strings.Contains(out.String(), "could not refresh user info") {
		t.Errorf("verbose mode should surface the refresh failure: %q", out.String())
	}
}
