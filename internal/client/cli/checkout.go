package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/truekicks/internal/client/services"
)

// Checkout collects shipping details and places an order for the cart.
func (a *App) Checkout(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return services.ErrNotLoggedIn
	}
	if len(a.cart.Items()) == 0 {
		return services.ErrEmptyCart
	}

	fmt.Fprintf(a.out, "Total: %s\n", a.cart.TotalPrice().Format())
	f, err := GetFields(a.reader, a.out, "Full name", "Address", "City", "Postal code", "Phone")
	if err != nil {
		return err
	}

	order, err := a.checkout.PlaceOrder(ctx, services.ShippingDetails{
		FullName:   f[0],
		Address:    f[1],
		City:       f[2],
		PostalCode: f[3],
		Phone:      f[4],
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order #%s placed successfully! Status: %s\n", order.ID, order.Status)
	return nil
}

// Orders prints the order history.
func (a *App) Orders(ctx context.Context) error {
	orders, err := a.checkout.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(a.out, "#%s  %s  %s  %d items  %s\n",
			o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, len(o.Items), o.TotalPrice.Format())
	}
	return nil
}
