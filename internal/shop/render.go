package shop

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/taazafoods/taaza-cli/internal/api"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	mutedStyle = lipgloss.NewStyle().
			Faint(true)

	rowStyle = lipgloss.NewStyle()

	expandedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
)

// formatAmount renders a backend amount without trailing zeros, so a
// subtotal of 100 reads "100", not "100.00".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPrice renders an optional item price; an absent price reads "N/A".
func formatPrice(price *float64, currency string) string {
	if price == nil {
		return "N/A"
	}
	return formatAmount(*price) + " " + currency
}

func renderBanner(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("🥗 Taaza Fresh Store"))
	fmt.Fprintln(w, mutedStyle.Render("Fresh groceries, delivered."))
}

func renderAlert(w io.Writer, msg string) {
	fmt.Fprintln(w, alertStyle.Render("⚠ "+msg))
}

func renderStatus(w io.Writer, msg string) {
	fmt.Fprintln(w, statusStyle.Render(msg))
}

func renderInfo(w io.Writer, msg string) {
	fmt.Fprintln(w, infoStyle.Render(msg))
}

func renderFieldError(w io.Writer, field, msg string) {
	fmt.Fprintln(w, alertStyle.Render(field+": "+msg))
}

func renderCategories(w io.Writer, cats []api.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No categories available right now."))
		return
	}
	fmt.Fprintln(w, titleStyle.Render("🍽 Categories"))
	for i, cat := range cats {
		fmt.Fprintf(w, "%s\n", rowStyle.Render(fmt.Sprintf("  %d. %s", i+1, cat.Name)))
	}
}

// renderItems draws every item as a collapsed row except the one whose id
// matches selectedID, which expands into the quantity/add affordance.
func renderItems(w io.Writer, items []api.Item, selectedID, currency string) {
	for _, it := range items {
		if it.ID == selectedID && selectedID != "" {
			block := fmt.Sprintf("▶ %s  %s\nQuantity: 1-100, default 1\nadd to cart", it.Name, formatPrice(it.Price, currency))
			fmt.Fprintln(w, expandedStyle.Render(block))
			continue
		}
		fmt.Fprintln(w, rowStyle.Render(fmt.Sprintf("  %s  %s", it.Name, formatPrice(it.Price, currency))))
	}
}

// renderCart draws the cart panel with backend-provided lines. The only
// arithmetic done here is display aggregation of subtotals and quantities.
func renderCart(w io.Writer, lines []api.CartLine, currency string) {
	if len(lines) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("🛒 Your cart is empty."))
		return
	}

	var total float64
	count := 0
	body := titleStyle.Render("🛒 Your Cart") + "\n"
	for _, l := range lines {
		body += fmt.Sprintf("%s x%d  %s %s\n", l.Name, l.Qty, formatAmount(l.Subtotal), currency)
		total += l.Subtotal
		count += l.Qty
	}
	body += totalStyle.Render(fmt.Sprintf("💰 Total: %s %s", formatAmount(total), currency)) + "\n"
	body += mutedStyle.Render(fmt.Sprintf("Items in cart: %d", count))
	fmt.Fprintln(w, panelStyle.Render(body))
}

func renderUser(w io.Writer, u api.User) {
	body := titleStyle.Render("👤 "+u.Name) + "\n"
	if u.Mobile != "" {
		body += u.Mobile + "\n"
	}
	body += mutedStyle.Render(u.Address)
	fmt.Fprintln(w, panelStyle.Render(body))
}

func renderCheckout(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("💳 Checkout"))
	fmt.Fprintln(w, mutedStyle.Render("Choose a payment method to place your order."))
}
