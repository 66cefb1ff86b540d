package cart

import (
	"encoding/json"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
)

// StorageKey — ключ, под которым корзина профиля по умолчанию хранится целиком.
const StorageKey = "shopcart_cart"

// Summary — позиции и производные итоги корзины.
type Summary struct {
	Items      []domain.CartLineItem `json:"items"`
	TotalItems int                   `json:"total_items"`
	TotalPrice domain.Money          `json:"total_price"`
}

// Store — корзина одного профиля с сохранением после каждого перехода.
// Переходы сериализуются мьютексом; запись в хранилище не может их отменить.
type Store struct {
	mu      sync.Mutex
	state   domain.CartState
	key     string
	kv      domain.KeyValueStore
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
}

// Option настраивает Store.
type Option func(*Store)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithProfile хранит корзину под ключом профиля.
func WithProfile(profile string) Option {
	return func(s *Store) {
		s.key = domain.ProfileKey(StorageKey, profile)
	}
}

// Open восстанавливает корзину из kv. Отсутствующее или повреждённое значение
// даёт пустую корзину; ошибка наружу не возвращается.
func Open(kv domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		key:    StorageKey,
		kv:     kv,
		logger: log.WithField("component", "cart-store"),
		state:  domain.EmptyCart(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("key", s.key)
	s.state = s.rehydrate()
	return s
}

func (s *Store) rehydrate() domain.CartState {
	raw, err := s.kv.Get(s.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.logger.Debug("no persisted cart, starting empty")
		s.metrics.RecordStorageFallback(s.key, "missing")
		return domain.EmptyCart()
	}
	if err != nil {
		s.logger.WithError(err).Warn("failed to read persisted cart, starting empty")
		s.metrics.RecordStorageFallback(s.key, "read_error")
		return domain.EmptyCart()
	}

	var state domain.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.WithError(err).Warn("persisted cart is corrupt, starting empty")
		s.metrics.RecordStorageFallback(s.key, "corrupt")
		return domain.EmptyCart()
	}

	normalized := state.Normalize()
	if len(normalized.Items) != len(state.Items) {
		s.logger.WithFields(log.Fields{
			"stored_lines": len(state.Items),
			"kept_lines":   len(normalized.Items),
		}).Warn("persisted cart violated invariants, normalized")
	}
	return normalized
}

// Dispatch применяет действие и сохраняет новое состояние.
func (s *Store) Dispatch(action domain.CartAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := domain.ReduceCart(s.state, action)
	if err != nil {
		return err
	}
	s.state = next
	s.metrics.RecordCartAction(action.Name())
	s.persist()
	return nil
}

// AddToCart добавляет товар или увеличивает количество на единицу.
func (s *Store) AddToCart(product domain.Product) {
	s.mustDispatch(domain.AddItem{Product: product})
}

// RemoveFromCart удаляет позицию; отсутствующий id игнорируется.
func (s *Store) RemoveFromCart(productID int) {
	s.mustDispatch(domain.RemoveItem{ProductID: productID})
}

// UpdateQuantity задаёт количество; quantity <= 0 удаляет позицию.
func (s *Store) UpdateQuantity(productID, quantity int) {
	s.mustDispatch(domain.SetQuantity{ProductID: productID, Quantity: quantity})
}

// ClearCart удаляет все позиции.
func (s *Store) ClearCart() {
	s.mustDispatch(domain.ClearItems{})
}

// mustDispatch применяет действие из закрытого набора, для которого ReduceCart не возвращает ошибок.
func (s *Store) mustDispatch(action domain.CartAction) {
	if err := s.Dispatch(action); err != nil {
		s.logger.WithError(err).Error("cart action rejected")
	}
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartLineItem, len(s.state.Items))
	copy(items, s.state.Items)
	return domain.CartState{Items: items}
}

// Items возвращает позиции в порядке добавления.
func (s *Store) Items() []domain.CartLineItem {
	return s.Snapshot().Items
}

// TotalItems возвращает сумму количеств.
func (s *Store) TotalItems() int {
	return s.Snapshot().TotalItems()
}

// TotalPrice возвращает сумму price × quantity.
func (s *Store) TotalPrice() domain.Money {
	return s.Snapshot().TotalPrice()
}

// Summary возвращает позиции и итоги из одного снимка.
func (s *Store) Summary() Summary {
	state := s.Snapshot()
	return Summary{
		Items:      state.Items,
		TotalItems: state.TotalItems(),
		TotalPrice: state.TotalPrice(),
	}
}

func (s *Store) persist() {
	payload, err := json.Marshal(s.state)
	if err == nil {
		err = s.kv.Put(s.key, payload)
	}
	if err != nil {
		s.logger.WithError(err).Warn("failed to persist cart")
		s.metrics.RecordStorageWriteError(s.key)
	}
}
