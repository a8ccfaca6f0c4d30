package voice

import "strconv"

// foodDictionary maps lowercase spoken names to canonical display
// names. Lookup is exact per word; plural forms are listed where the
// plural is how people actually say them.
var foodDictionary = map[string]string{
	"rice":     "Rice",
	"wheat":    "Wheat",
	"flour":    "Flour",
	"atta":     "Atta",
	"dal":      "Dal",
	"oats":     "Oats",
	"bread":    "Bread",
	"milk":     "Milk",
	"curd":     "Curd",
	"yogurt":   "Yogurt",
	"cheese":   "Cheese",
	"paneer":   "Paneer",
	"butter":   "Butter",
	"ghee":     "Ghee",
	"egg":      "Egg",
	"eggs":     "Eggs",
	"tomato":   "Tomato",
	"tomatoes": "Tomatoes",
	"onion":    "Onion",
	"onions":   "Onions",
	"potato":   "Potato",
	"potatoes": "Potatoes",
	"carrot":   "Carrot",
	"carrots":  "Carrots",
	"spinach":  "Spinach",
	"oil":      "Oil",
	"salt":     "Salt",
	"sugar":    "Sugar",
	"turmeric": "Turmeric",
	"masala":   "Masala",
	"tea":      "Tea",
	"coffee":   "Coffee",
	"juice":    "Juice",
	"biscuits": "Biscuits",
	"honey":    "Honey",
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
