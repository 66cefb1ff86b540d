package domain

// Rating — агрегированная оценка товара.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product — товар каталога. Неизменяем после загрузки, идентичность по ID.
type Product struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Price       Money  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Rating      Rating `json:"rating"`
}

// IsZero сообщает, что товар не был заполнен (например, каталог вернул пустое тело).
func (p Product) IsZero() bool {
	return p.ID == 0 && p.Title == ""
}
