package domain

import "fmt"

// CartLineItem — позиция корзины: снимок товара на момент добавления плюс количество.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal возвращает price × quantity.
func (i CartLineItem) Subtotal() Money {
	return i.Price.Times(i.Quantity)
}

// CartState — единственное состояние корзины; порядок позиций равен порядку добавления.
type CartState struct {
	Items []CartLineItem `json:"items"`
}

// EmptyCart возвращает пустое состояние.
func EmptyCart() CartState {
	return CartState{Items: []CartLineItem{}}
}

// TotalItems возвращает сумму количеств. Не хранится, считается заново.
func (s CartState) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice считает Σ price × quantity.
func (s CartState) TotalPrice() Money {
	total := Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty сообщает, что в корзине нет позиций.
func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find возвращает позицию по id товара.
func (s CartState) Find(productID int) (CartLineItem, bool) {
	for _, item := range s.Items {
		if item.ID == productID {
			return item, true
		}
	}
	return CartLineItem{}, false
}

// Normalize приводит восстановленное из хранилища состояние к инвариантам:
// позиции с quantity <= 0 отбрасываются, дубликаты id сливаются в первую позицию.
func (s CartState) Normalize() CartState {
	result := make([]CartLineItem, 0, len(s.Items))
	index := make(map[int]int, len(s.Items))
	for _, item := range s.Items {
		if item.Quantity <= 0 {
			continue
		}
		if pos, ok := index[item.ID]; ok {
			result[pos].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(result)
		result = append(result, item)
	}
	return CartState{Items: result}
}

// CartAction — закрытый набор действий над корзиной.
type CartAction interface {
	cartAction()
	// Name используется в логах и метриках.
	Name() string
}

// AddItem добавляет товар или увеличивает количество на 1.
type AddItem struct {
	Product Product
}

// RemoveItem удаляет позицию по id товара.
type RemoveItem struct {
	ProductID int
}

// SetQuantity задаёт количество; quantity <= 0 эквивалентно удалению.
type SetQuantity struct {
	ProductID int
	Quantity  int
}

// ClearItems очищает корзину.
type ClearItems struct{}

func (AddItem) cartAction()     {}
func (RemoveItem) cartAction()  {}
func (SetQuantity) cartAction() {}
func (ClearItems) cartAction()  {}

func (AddItem) Name() string     { return "add" }
func (RemoveItem) Name() string  { return "remove" }
func (SetQuantity) Name() string { return "set_quantity" }
func (ClearItems) Name() string  { return "clear" }

// ReduceCart выполняет чистый переход (state, action) -> state.
// Входной срез позиций никогда не изменяется.
func ReduceCart(state CartState, action CartAction) (CartState, error) {
	switch a := action.(type) {
	case AddItem:
		items := make([]CartLineItem, 0, len(state.Items)+1)
		found := false
		for _, item := range state.Items {
			if item.ID == a.Product.ID {
				item.Quantity++
				found = true
			}
			items = append(items, item)
		}
		if !found {
			items = append(items, CartLineItem{Product: a.Product, Quantity: 1})
		}
		return CartState{Items: items}, nil
	case RemoveItem:
		return withoutItem(state, a.ProductID), nil
	case SetQuantity:
		if a.Quantity <= 0 {
			return withoutItem(state, a.ProductID), nil
		}
		items := make([]CartLineItem, len(state.Items))
		for i, item := range state.Items {
			if item.ID == a.ProductID {
				item.Quantity = a.Quantity
			}
			items[i] = item
		}
		return CartState{Items: items}, nil
	case ClearItems:
		return EmptyCart(), nil
	default:
		return state, fmt.Errorf("%w: %T", ErrUnknownCartAction, action)
	}
}

func withoutItem(state CartState, productID int) CartState {
	items := make([]CartLineItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID != productID {
			items = append(items, item)
		}
	}
	return CartState{Items: items}
}
