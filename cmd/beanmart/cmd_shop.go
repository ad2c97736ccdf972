package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/beanmart/beanmart/internal/guard"
	"github.com/beanmart/beanmart/pkg/client"
	"github.com/beanmart/beanmart/pkg/domain"
)

var (
	dimText   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	priceText = lipgloss.NewStyle().Foreground(lipgloss.Color("#e8b86d"))
)

func newProductsCmd(a *app) *cobra.Command {
	var f client.ProductFilter
	cmd := &cobra.Command{
		Use:   "products [id]",
		Short: "Browse the coffee catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				p, err := a.api.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("get product: %w", err)
				}
				printProduct(out, p)
				return nil
			}
			if f.Roast != "" && !domain.ValidRoast(f.Roast) {
				return fmt.Errorf("unknown roast %q (want one of: %s)", f.Roast, strings.Join(domain.ValidRoasts, ", "))
			}
			products, err := a.api.ListProducts(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			if len(products) == 0 {
				fmt.Fprintln(out, "No coffees match.")
				return nil
			}
			for _, p := range products {
				stock := ""
				if !p.InStock {
					stock = dimText.Render("sold out")
				}
				fmt.Fprintf(out, "%s  %-28s  %-11s  %s  %s\n",
					dimText.Render(shortID(p.ID.String())), p.Name, p.Roast,
					priceText.Render(fmt.Sprintf("%8s", domain.FormatPrice(p.PriceCents))), stock)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&f.Roast, "roast", "", "roast level filter")
	cmd.Flags().IntVar(&f.Limit, "limit", 50, "maximum results")
	return cmd
}

func printProduct(out io.Writer, p *domain.Product) {
	fmt.Fprintf(out, "\n  %s  %s\n\n", lipgloss.NewStyle().Bold(true).Render(p.Name), p.Roast)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(out, "  %s %s\n", dimText.Render(fmt.Sprintf("%-7s", k)), v)
		}
	}
	row("origin", p.Origin)
	row("notes", strings.Join(p.Notes, ", "))
	row("price", domain.FormatPrice(p.PriceCents))
	if p.WeightGrams > 0 {
		row("weight", fmt.Sprintf("%dg", p.WeightGrams))
	}
	if !p.InStock {
		row("stock", "sold out")
	}
	if p.Description != "" {
		fmt.Fprintf(out, "\n  %s\n", p.Description)
	}
	fmt.Fprintln(out)
}

func newOrdersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := guard.RequireAuthenticated(a.store.Snapshot()); err != nil {
				return err
			}
			orders, err := a.api.ListOrders(cmd.Context())
			if err != nil {
				return fmt.Errorf("list orders: %w", err)
			}
			printOrders(cmd.OutOrStdout(), orders, false)
			return nil
		},
	}
}

func newAdminCmd(a *app) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Store administration (admins only)",
	}

	var status string
	orders := &cobra.Command{
		Use:   "orders",
		Short: "List every customer order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := guard.RequireAdmin(a.store.Snapshot()); err != nil {
				return err
			}
			list, err := a.api.AdminListOrders(cmd.Context(), status)
			if err != nil {
				return fmt.Errorf("list all orders: %w", err)
			}
			printOrders(cmd.OutOrStdout(), list, true)
			return nil
		},
	}
	orders.Flags().StringVar(&status, "status", "", "only orders with this status")
	admin.AddCommand(orders)
	return admin
}

func printOrders(out io.Writer, orders []domain.Order, withEmail bool) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders.")
		return
	}
	for _, o := range orders {
		line := fmt.Sprintf("%s  %-9s  %s  %3d items",
			dimText.Render(shortID(o.ID.String())), o.Status,
			priceText.Render(fmt.Sprintf("%8s", domain.FormatPrice(o.TotalCents))), o.ItemCount())
		if withEmail {
			line += "  " + o.Email
		}
		if !o.CreatedAt.IsZero() {
			line += "  " + dimText.Render(o.CreatedAt.Format("2006-01-02"))
		}
		fmt.Fprintln(out, line)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
