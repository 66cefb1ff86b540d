package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
)

var (
	// FreeShippingThreshold — стандартная доставка бесплатна при сумме строго больше порога.
	FreeShippingThreshold = domain.MustMoney("100")
	// StandardShippingFee — стоимость стандартной доставки ниже порога.
	StandardShippingFee = domain.MustMoney("9.99")
	// ExpressShippingFee задаёт стоимость экспресс-доставки.
	ExpressShippingFee = domain.MustMoney("19.99")
	// TaxRate задаёт ставку налога от суммы товаров.
	TaxRate = decimal.RequireFromString("0.08")
)

// Cart описывает то, что оформлению нужно от корзины.
type Cart interface {
	Snapshot() domain.CartState
	ClearCart()
}

// CalculateQuote считает доставку, налог и итог для суммы товаров.
func CalculateQuote(subtotal domain.Money, method domain.ShippingMethod) domain.Quote {
	shipping := domain.Zero
	remaining := domain.Zero
	switch {
	case method == domain.ShippingExpress:
		shipping = ExpressShippingFee
	case subtotal.Cmp(FreeShippingThreshold) <= 0:
		shipping = StandardShippingFee
		remaining = FreeShippingThreshold.Sub(subtotal)
	}

	tax := domain.NewMoney(subtotal.Mul(TaxRate)).RoundCents()
	return domain.Quote{
		Subtotal:              subtotal,
		Method:                method,
		Shipping:              shipping,
		Tax:                   tax,
		Total:                 subtotal.Add(shipping).Add(tax),
		FreeShippingRemaining: remaining,
	}
}

// Service оформляет симулированные заказы: платёж не проводится, событие публикуется.
type Service struct {
	publisher domain.OrderPublisher
	logger    *log.Entry
	metrics   *metrics.StorefrontMetrics
	now       func() time.Time
	newID     func() string
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService создаёт сервис оформления. publisher может быть nil: тогда события не публикуются.
func NewService(publisher domain.OrderPublisher, opts ...Option) *Service {
	s := &Service{
		publisher: publisher,
		logger:    log.WithField("component", "checkout"),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote считает итог для текущего содержимого корзины.
func (s *Service) Quote(cart Cart, method domain.ShippingMethod) domain.Quote {
	return CalculateQuote(cart.Snapshot().TotalPrice(), method)
}

// PlaceOrder проверяет форму, фиксирует позиции и итог, публикует событие и очищает корзину.
// Ошибка публикации логируется и не отменяет заказ.
func (s *Service) PlaceOrder(cart Cart, form Form) (domain.PlacedOrder, error) {
	if err := Validate(form); err != nil {
		return domain.PlacedOrder{}, err
	}
	return s.place(cart, form)
}

// PlaceFlowOrder оформляет заказ по завершённому Flow.
func (s *Service) PlaceFlowOrder(cart Cart, flow *Flow) (domain.PlacedOrder, error) {
	if flow == nil || !flow.Complete() {
		return domain.PlacedOrder{}, domain.ErrCheckoutIncomplete
	}
	return s.place(cart, flow.Form())
}

func (s *Service) place(cart Cart, form Form) (domain.PlacedOrder, error) {
	state := cart.Snapshot()
	if state.IsEmpty() {
		return domain.PlacedOrder{}, domain.ErrCartEmpty
	}

	order := domain.PlacedOrder{
		ID:        s.newID(),
		Items:     state.Items,
		Quote:     CalculateQuote(state.TotalPrice(), form.ShippingMethod()),
		ShipTo:    form.ShipTo(),
		CardLast4: form.CardLast4(),
		PlacedAt:  s.now(),
	}

	logger := s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    order.TotalItems(),
		"total":    order.Quote.Total.String(),
	})

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(order); err != nil {
			logger.WithError(fmt.Errorf("%w: %v", domain.ErrOrderPublish, err)).Warn("order placed but event was not published")
			s.metrics.RecordPublishFailure()
		}
	}

	cart.ClearCart()
	s.metrics.RecordOrderPlaced(order.Quote.Total.InexactFloat64())
	logger.Info("order placed")
	return order, nil
}
