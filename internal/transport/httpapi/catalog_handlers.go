package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/service/listing"
)

type homeResponse struct {
	Featured   []productView     `json:"featured"`
	Categories []string          `json:"categories"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// home загружает товары и категории параллельно; ошибка категорий не роняет страницу.
func (s *server) home(w http.ResponseWriter, r *http.Request) {
	products := catalog.ProductsQuery(s.catalog, "")
	categories := catalog.CategoriesQuery(s.catalog)

	var g errgroup.Group
	g.Go(func() error {
		products.Load(r.Context())
		return nil
	})
	g.Go(func() error {
		categories.Load(r.Context())
		return nil
	})
	_ = g.Wait()

	productsResult := products.Result()
	if productsResult.Status != catalog.StatusReady {
		respondError(w, http.StatusBadGateway, productsResult.Message)
		return
	}

	response := homeResponse{
		Featured:   s.productViews(listing.Featured(productsResult.Data, listing.FeaturedCount)),
		Categories: []string{},
	}
	if categoriesResult := categories.Result(); categoriesResult.Status == catalog.StatusReady {
		response.Categories = categoriesResult.Data
	} else {
		response.Errors = map[string]string{"categories": categoriesResult.Message}
	}
	respondJSON(w, http.StatusOK, response)
}

func (s *server) categories(w http.ResponseWriter, r *http.Request) {
	result := catalog.CategoriesQuery(s.catalog).Load(r.Context())
	if result.Status != catalog.StatusReady {
		respondCatalogError(w, result.Err, result.Message)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"categories": result.Data})
}

type productsResponse struct {
	Products     []productView  `json:"products"`
	Count        int            `json:"count"`
	Sort         domain.SortKey `json:"sort"`
	FilterActive bool           `json:"filter_active"`
}

// products отдаёт каталог после фильтрации и сортировки: ?category&search&min&max&sort.
func (s *server) products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.DefaultFilter()
	filter.Category = query.Get("category")
	filter.SearchText = query.Get("search")
	for param, target := range map[string]*domain.Money{"min": &filter.MinPrice, "max": &filter.MaxPrice} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}
		value, err := domain.MoneyFromString(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid "+param+" price")
			return
		}
		*target = value
	}

	sortKey, err := domain.ParseSortKey(query.Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := catalog.ProductsQuery(s.catalog, filter.Category).Load(r.Context())
	if result.Status != catalog.StatusReady {
		respondCatalogError(w, result.Err, result.Message)
		return
	}

	view := listing.DeriveView(result.Data, filter, sortKey, listing.WithLocale(s.locale))
	respondJSON(w, http.StatusOK, productsResponse{
		Products:     s.productViews(view),
		Count:        len(view),
		Sort:         sortKey,
		FilterActive: filter.IsActive(),
	})
}

type productResponse struct {
	Product productView   `json:"product"`
	Related []productView `json:"related"`
}

func (s *server) product(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result := catalog.ProductQuery(s.catalog, id).Load(r.Context())
	if result.Status != catalog.StatusReady {
		respondCatalogError(w, result.Err, catalog.MessageFor(result.Err))
		return
	}

	respondJSON(w, http.StatusOK, productResponse{
		Product: s.productView(result.Data),
		Related: s.productViews(s.related(r.Context(), result.Data)),
	})
}

// related содержит похожие товары; ошибка их загрузки не мешает показать сам товар.
func (s *server) related(ctx context.Context, product domain.Product) []domain.Product {
	sameCategory, err := s.catalog.ProductsByCategory(ctx, product.Category)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).Warn("failed to load related products")
		return nil
	}
	return listing.Related(sameCategory, product, listing.RelatedCount)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// fetchProduct загружает товар для добавления в корзину.
func (s *server) fetchProduct(ctx context.Context, w http.ResponseWriter, id int) (domain.Product, bool) {
	product, err := s.catalog.Product(ctx, id)
	if err != nil {
		respondCatalogError(w, err, catalog.MessageFor(err))
		return domain.Product{}, false
	}
	return product, true
}
