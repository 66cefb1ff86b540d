package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/pricing"
	"github.com/vladislavdragonenkov/shopcart/internal/service/listing"
)

func newProductsCmd(env *environment) *cobra.Command {
	var category, search, minPrice, maxPrice, sortKey string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products with filters and sorting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.DefaultFilter()
			filter.Category = category
			filter.SearchText = search
			for flag, bound := range map[string]struct {
				raw    string
				target *domain.Money
			}{
				"min": {minPrice, &filter.MinPrice},
				"max": {maxPrice, &filter.MaxPrice},
			} {
				if bound.raw == "" {
					continue
				}
				value, err := domain.MoneyFromString(bound.raw)
				if err != nil {
					return fmt.Errorf("invalid --%s: %w", flag, err)
				}
				*bound.target = value
			}

			key, err := domain.ParseSortKey(sortKey)
			if err != nil {
				return err
			}

			client, err := env.catalogClient()
			if err != nil {
				return err
			}
			result := catalog.ProductsQuery(client, category).Load(cmd.Context())
			if result.Status != catalog.StatusReady {
				return errors.New(result.Message)
			}

			view := listing.DeriveView(result.Data, filter, key)
			if len(view) == 0 {
				env.printf("No products found\n")
				return nil
			}
			env.printProducts(view)
			env.printf("\n%d products, sorted by %s\n", len(view), key.Label())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&category, "category", "", "exact category")
	flags.StringVar(&search, "search", "", "case-insensitive match on title or category")
	flags.StringVar(&minPrice, "min", "", "minimum price (inclusive)")
	flags.StringVar(&maxPrice, "max", "", "maximum price (inclusive)")
	flags.StringVar(&sortKey, "sort", string(domain.SortDefault), "sort: default|price-asc|price-desc|rating|name")

	cmd.AddCommand(newProductShowCmd(env))
	return cmd
}

func newProductShowCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show product details and related products",
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

			result := catalog.ProductQuery(client, id).Load(cmd.Context())
			if result.Status != catalog.StatusReady {
				return errors.New(result.Message)
			}
			product := result.Data

			env.printf("%s\n", product.Title)
			env.printf("%s  %s (%d reviews)\n", env.formatter.Format(product.Price), renderStars(product.Rating.Rate), product.Rating.Count)
			env.printf("Category: %s\n\n%s\n", product.Category, product.Description)

			// Ошибка загрузки похожих товаров не мешает показать сам товар.
			sameCategory, err := client.ProductsByCategory(cmd.Context(), product.Category)
			if err != nil {
				env.logger.WithError(err).Warn("failed to load related products")
				return nil
			}
			if related := listing.Related(sameCategory, product, listing.RelatedCount); len(related) > 0 {
				env.printf("\nYou may also like:\n")
				env.printProducts(related)
			}
			return nil
		},
	}
}

func newCategoriesCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := env.catalogClient()
			if err != nil {
				return err
			}
			result := catalog.CategoriesQuery(client).Load(cmd.Context())
			if result.Status != catalog.StatusReady {
				return errors.New(result.Message)
			}
			for _, category := range result.Data {
				env.printf("%s\n", category)
			}
			return nil
		},
	}
}

func (e *environment) printProducts(products []domain.Product) {
	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tPRICE\tRATING\tCATEGORY")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncateTitle(p.Title),
			e.formatter.Format(p.Price),
			renderStars(p.Rating.Rate),
			p.Category,
		)
	}
	_ = w.Flush()
}

var starGlyphs = map[pricing.Star]string{
	pricing.StarFull:  "★",
	pricing.StarHalf:  "⯪",
	pricing.StarEmpty: "☆",
}

func renderStars(rating float64) string {
	var b strings.Builder
	for _, star := range pricing.RenderStars(rating) {
		b.WriteString(starGlyphs[star])
	}
	return b.String()
}

func truncateTitle(title string) string {
	return pricing.TruncateText(title, pricing.DefaultTruncateLength)
}

func parseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}
