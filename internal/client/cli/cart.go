package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
)

// AddToCart: add <table> <id> <size> [quantity]. Product details are looked
// up in the catalog. Guests get a hint instead of an error because the cart
// silently ignores them.
func (a *App) AddToCart(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return usage("add <table> <id> <size> [quantity]")
	}

	qty := models.Quantity(1)
	if len(args) == 4 {
		n, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil || n < 1 {
			return usage("quantity must be a positive integer")
		}
		qty = models.Quantity(n)
	}

	p, err := a.catalog.Detail(ctx, args[0], models.ID(args[1]))
	if err != nil {
		return err
	}

	if !a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "Log in to use the cart.")
		return nil
	}

	item := models.CartItem{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.ImageURL, Size: args[2], Quantity: qty}
	if err := a.cart.Add(ctx, item); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %d x %s (size %s)\n", qty, p.Name, args[2])
	return nil
}

// RemoveFromCart: remove <id> <size>.
func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("remove <id> <size>")
	}
	return a.cart.Remove(ctx, models.ID(args[0]), args[1])
}

// UpdateQuantity: qty <id> <size> <n>. The value is taken as is.
func (a *App) UpdateQuantity(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("qty <id> <size> <quantity>")
	}
	n, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return usage("quantity must be an integer")
	}
	return a.cart.UpdateQuantity(ctx, models.ID(args[0]), args[1], models.Quantity(n))
}

func (a *App) ShowCart(ctx context.Context) error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tQTY\tSUBTOTAL\t")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t\n", it.ID, it.Name, it.Size, it.Quantity, it.Subtotal().Format())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Items: %d  Total: %s\n", a.cart.TotalItems(), a.cart.TotalPrice().Format())
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	if err := a.cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}
