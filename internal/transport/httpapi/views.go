package httpapi

import (
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/pricing"
	"github.com/vladislavdragonenkov/shopcart/internal/service/cart"
)

type productView struct {
	domain.Product
	ShortTitle string         `json:"short_title"`
	PriceLabel string         `json:"price_label"`
	Stars      []pricing.Star `json:"stars"`
}

type lineView struct {
	domain.CartLineItem
	PriceLabel    string `json:"price_label"`
	SubtotalLabel string `json:"subtotal_label"`
}

type cartView struct {
	Items           []lineView   `json:"items"`
	TotalItems      int          `json:"total_items"`
	TotalPrice      domain.Money `json:"total_price"`
	TotalPriceLabel string       `json:"total_price_label"`
}

type quoteView struct {
	domain.Quote
	TotalLabel string `json:"total_label"`
}

type sessionView struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
}

func (s *server) productView(p domain.Product) productView {
	return productView{
		Product:    p,
		ShortTitle: pricing.TruncateText(p.Title, pricing.DefaultTruncateLength),
		PriceLabel: s.formatter.Format(p.Price),
		Stars:      pricing.RenderStars(p.Rating.Rate),
	}
}

func (s *server) productViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, s.productView(p))
	}
	return views
}

func (s *server) cartView(summary cart.Summary) cartView {
	items := make([]lineView, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, lineView{
			CartLineItem:  item,
			PriceLabel:    s.formatter.Format(item.Price),
			SubtotalLabel: s.formatter.Format(item.Subtotal()),
		})
	}
	return cartView{
		Items:           items,
		TotalItems:      summary.TotalItems,
		TotalPrice:      summary.TotalPrice,
		TotalPriceLabel: s.formatter.Format(summary.TotalPrice),
	}
}

func (s *server) quoteView(q domain.Quote) quoteView {
	return quoteView{Quote: q, TotalLabel: s.formatter.Format(q.Total)}
}

func newSessionView(store interface {
	Current() (domain.Identity, bool)
}) sessionView {
	identity, ok := store.Current()
	if !ok {
		return sessionView{}
	}
	return sessionView{Authenticated: true, User: &identity}
}
