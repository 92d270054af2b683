package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
)

// Like: like <table> <id>.
func (a *App) Like(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("like <table> <id>")
	}
	p, err := a.catalog.Detail(ctx, args[0], models.ID(args[1]))
	if err != nil {
		return err
	}

	if !a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "Log in to use the wishlist.")
		return nil
	}
	if a.wishlist.Contains(p.ID) {
		fmt.Fprintf(a.out, "%s is already in your wishlist\n", p.Name)
		return nil
	}

	item := models.WishlistItem{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.ImageURL}
	if err := a.wishlist.Add(ctx, item); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s to your wishlist\n", p.Name)
	return nil
}

// Unlike: unlike <id>.
func (a *App) Unlike(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("unlike <id>")
	}
	return a.wishlist.Remove(ctx, models.ID(args[0]))
}

func (a *App) ShowWishlist(ctx context.Context) error {
	items := a.wishlist.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your wishlist is empty.")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "%s  %s  %s\n", it.ID, it.Name, it.Price.Format())
	}
	return nil
}
