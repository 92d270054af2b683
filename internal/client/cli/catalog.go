package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/services"
)

var errUsage = errors.New("usage")

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

// List prints one catalog table.
func (a *App) List(ctx context.Context, table string) error {
	var (
		products []models.Product
		err      error
	)
	switch table {
	case services.TableProducts:
		products, err = a.catalog.Products(ctx)
	case services.TableSneakers:
		products, err = a.catalog.Sneakers(ctx)
	case services.TableApparel:
		products, err = a.catalog.Apparel(ctx)
	default:
		return fmt.Errorf("%w: %q", services.ErrUnknownTable, table)
	}
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(a.out, "Nothing here yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\t")
	for _, p := range products {
		mark := ""
		if a.wishlist.Contains(p.ID) {
			mark = " ♥"
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\t%s\t\n", p.ID, p.Name, mark, p.Category, p.Price.Format())
	}
	return w.Flush()
}

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Fprintf(a.out, "%s %s\n", c.Emoji, c.Name)
	}
	return nil
}

// Show prints a single product: show <table> <id>.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("show <table> <id>")
	}
	p, err := a.catalog.Detail(ctx, args[0], models.ID(args[1]))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.Name, p.Category)
	fmt.Fprintf(a.out, "Price: %s\n", p.Price.Format())
	if p.Description != "" {
		fmt.Fprintln(a.out, p.Description)
	}
	fmt.Fprintf(a.out, "Image: %s\n", p.ImageURL)
	for _, img := range p.DetailImages {
		fmt.Fprintf(a.out, "  %s\n", img)
	}
	return nil
}
