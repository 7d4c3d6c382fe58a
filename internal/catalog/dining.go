package catalog

// MealOption is one dining-hall category with its per-diner price.
type MealOption struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// MealOptions lists the dining categories served by the dining hall.
var MealOptions = []MealOption{
	{ID: "breakfast", Label: "Desayuno", Price: 4.50},
	{ID: "lunch", Label: "Comida", Price: 12.00},
	{ID: "dinner", Label: "Cena", Price: 10.00},
	{ID: "morningSnack", Label: "Almuerzo", Price: 3.00},
	{ID: "afternoonSnack", Label: "Merienda", Price: 3.00},
}

// MealPrice returns the per-diner price of a meal category, or 0 for an
// unknown ID.
func MealPrice(id string) float64 {
	for _, m := range MealOptions {
		if m.ID == id {
			return m.Price
		}
	}
	return 0
}
