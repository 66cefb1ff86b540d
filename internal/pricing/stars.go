package pricing

import "math"

// Star — состояние одной позиции рейтинга.
type Star string

const (
	StarFull  Star = "full"
	StarHalf  Star = "half"
	StarEmpty Star = "empty"
)

// MaxStars задаёт длину шкалы рейтинга.
const MaxStars = 5

// RenderStars переводит рейтинг 0–5 в ровно пять позиций:
// full ниже floor(rating), half на floor(rating) при дробной части >= 0.5, иначе empty.
func RenderStars(rating float64) []Star {
	if math.IsNaN(rating) {
		rating = 0
	}
	full := math.Floor(rating)
	half := rating-full >= 0.5

	stars := make([]Star, MaxStars)
	for i := range stars {
		switch {
		case float64(i) < full:
			stars[i] = StarFull
		case float64(i) == full && half:
			stars[i] = StarHalf
		default:
			stars[i] = StarEmpty
		}
	}
	return stars
}
