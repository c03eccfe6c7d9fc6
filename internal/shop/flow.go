package shop

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/taazafoods/taaza-cli/internal/api"
)

// Flow runs the interactive shopping session on top of a Controller. One
// request is in flight at a time: every prompt waits for the previous
// operation to finish before offering the next action.
type Flow struct {
	ctrl *Controller
}

// NewFlow creates the interactive flow for a controller.
func NewFlow(ctrl *Controller) *Flow {
	return &Flow{ctrl: ctrl}
}

// Run registers the customer and then loops on the main menu until the
// user quits. A prompt interrupt (Ctrl-C) ends the session cleanly.
func (f *Flow) Run(ctx context.Context) error {
	renderBanner(f.ctrl.out)

	if err := f.register(ctx); err != nil {
		return err
	}

	for {
		menu := promptui.Select{
			Label: "What would you like to do",
			Items: []string{"Browse categories", "View cart", "Remove an item", "Checkout", "Quit"},
		}
		choice, _, err := menu.Run()
		if err != nil {
			f.ctrl.EndSession(ctx)
			return nil
		}

		switch choice {
		case 0:
			f.browse(ctx)
		case 1:
			_ = f.ctrl.ViewCartNow(ctx)
		case 2:
			f.removeItem(ctx)
		case 3:
			f.checkout(ctx)
		case 4:
			f.ctrl.EndSession(ctx)
			return nil
		}
	}
}

func notEmpty(field string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// register prompts the registration form until a session opens. The mobile
// prompt validates inline with the same rule StartSession enforces.
func (f *Flow) register(ctx context.Context) error {
	for {
		name, err := (&promptui.Prompt{Label: "Your name", Validate: notEmpty("name")}).Run()
		if err != nil {
			return err
		}
		mobile, err := (&promptui.Prompt{
			Label:    fmt.Sprintf("Mobile number (%s)", f.ctrl.opts.CountryCode),
			Validate: ValidateMobile,
		}).Run()
		if err != nil {
			return err
		}
		address, err := (&promptui.Prompt{Label: "Delivery address", Validate: notEmpty("address")}).Run()
		if err != nil {
			return err
		}

		serr := f.ctrl.StartSession(ctx, RegistrationForm{Name: name, Mobile: mobile, Address: address})
		if serr == nil {
			return nil
		}

		// StartSession already rendered the failure.
		retry := promptui.Select{Label: "Registration failed. Try again", Items: []string{"Yes", "No"}}
		choice, _, err := retry.Run()
		if err != nil || choice == 1 {
			return serr
		}
	}
}

// browse shows the category list, opens one by number and walks the item
// selection. The number prompt only checks for an integer; the range check
// and its alert belong to the controller.
func (f *Flow) browse(ctx context.Context) {
	if err := f.ctrl.FetchCategories(ctx); err != nil {
		return
	}

	raw, err := (&promptui.Prompt{
		Label: "Category number",
		Validate: func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("enter a number")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return
	}
	n, _ := strconv.Atoi(strings.TrimSpace(raw))

	if err := f.ctrl.OpenCategoryByNumber(ctx, n); err != nil {
		return
	}
	f.pickItem(ctx)
}

func itemLabel(it api.Item, currency string) string {
	return fmt.Sprintf("%s  %s", it.Name, formatPrice(it.Price, currency))
}

// pickItem expands one item, asks for a quantity and adds it to the cart.
func (f *Flow) pickItem(ctx context.Context) {
	items := f.ctrl.CurrentItems()
	if len(items) == 0 {
		f.ctrl.Back()
		return
	}

	labels := make([]string, 0, len(items)+1)
	for _, it := range items {
		labels = append(labels, itemLabel(it, f.ctrl.opts.CurrencyLabel))
	}
	labels = append(labels, "Back")

	sel := promptui.Select{Label: "Select an item", Items: labels, Size: 10}
	idx, _, err := sel.Run()
	if err != nil || idx == len(items) {
		f.ctrl.Back()
		return
	}
	item := items[idx]
	f.ctrl.SelectItem(item.ID)

	raw, err := (&promptui.Prompt{
		Label:   "Quantity (1-100)",
		Default: "1",
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 1 || n > 100 {
				return fmt.Errorf("enter a number between 1 and 100")
			}
			return nil
		},
	}).Run()
	if err != nil {
		f.ctrl.Back()
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		qty = 1
	}

	_ = f.ctrl.AddToCart(ctx, item, qty)
}

// removeItem reduces or removes a line from the cart by name.
func (f *Flow) removeItem(ctx context.Context) {
	if len(f.ctrl.cart) == 0 {
		if err := f.ctrl.ViewCartNow(ctx); err != nil {
			return
		}
	}
	if len(f.ctrl.cart) == 0 {
		return
	}

	labels := make([]string, 0, len(f.ctrl.cart)+1)
	for _, l := range f.ctrl.cart {
		labels = append(labels, fmt.Sprintf("%s x%d", l.Name, l.Qty))
	}
	labels = append(labels, "Back")

	sel := promptui.Select{Label: "Remove which item", Items: labels}
	idx, _, err := sel.Run()
	if err != nil || idx == len(f.ctrl.cart) {
		return
	}
	line := f.ctrl.cart[idx]

	raw, err := (&promptui.Prompt{Label: "Quantity to remove", Default: "1"}).Run()
	if err != nil {
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		qty = 1
	}

	_ = f.ctrl.RemoveFromCart(ctx, line.Name, qty)
}

// checkout opens the checkout panel and confirms with a payment method.
// A failed confirmation keeps the panel open so the user can retry.
func (f *Flow) checkout(ctx context.Context) {
	f.ctrl.OpenCheckout()
	for f.ctrl.checkoutOpen {
		sel := promptui.Select{
			Label: "Payment method",
			Items: []string{"Cash on Delivery", "Online Transfer", "Back"},
		}
		idx, method, err := sel.Run()
		if err != nil || idx == 2 {
			f.ctrl.checkoutOpen = false
			return
		}
		_ = f.ctrl.ConfirmOrder(ctx, method)
	}
}
