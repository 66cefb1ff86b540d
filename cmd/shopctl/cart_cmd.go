package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/service/cart"
)

func newCartCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart of the current profile",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			env.printCart(env.cart().Summary())
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				client, err := env.catalogClient()
				if err != nil {
					return err
				}
				product, err := client.Product(cmd.Context(), id)
				if err != nil {
					env.logger.WithError(err).WithField("product_id", id).Debug("product lookup failed")
					return errors.New(catalog.MessageFor(err))
				}

				store := env.cart()
				store.AddToCart(product)
				env.printf("Added %q to cart\n", product.Title)
				env.printCart(store.Summary())
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove a product line",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				store := env.cart()
				store.RemoveFromCart(id)
				env.printCart(store.Summary())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <product-id> <quantity>",
			Short: "Set the quantity of a line; 0 or less removes it",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				quantity, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid quantity %q", args[1])
				}
				store := env.cart()
				store.UpdateQuantity(id, quantity)
				env.printCart(store.Summary())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every line",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				env.cart().ClearCart()
				env.printf("Cart cleared\n")
				return nil
			},
		},
	)
	return cmd
}

func (e *environment) printCart(summary cart.Summary) {
	if len(summary.Items) == 0 {
		e.printf("Your cart is empty\n")
		return
	}

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range summary.Items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			item.ID,
			truncateTitle(item.Title),
			item.Quantity,
			e.formatter.Format(item.Price),
			e.formatter.Format(item.Subtotal()),
		)
	}
	_ = w.Flush()
	e.printf("Items: %d  Total: %s\n", summary.TotalItems, e.formatter.Format(summary.TotalPrice))
}
