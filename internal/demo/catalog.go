package demo

// The canned catalog mirrors the upstream POS shape: categories carry a
// categoryName field, items carry _id/itemName/price. "Seasonal Special"
// deliberately has no price so clients exercise their N/A path.

type catalogCategory struct {
	CategoryName string `json:"categoryName"`
}

type catalogItem struct {
	ID       string   `json:"_id"`
	ItemName string   `json:"itemName"`
	Price    *float64 `json:"price,omitempty"`
}

func price(v float64) *float64 { return &v }

var categories = []catalogCategory{
	{CategoryName: "Snacks"},
	{CategoryName: "Beverages"},
	{CategoryName: "Desserts"},
	{CategoryName: "Grocery"},
}

var itemsByCategory = map[string][]catalogItem{
	"Snacks": {
		{ID: "itm-samosa", ItemName: "Samosa", Price: price(30)},
		{ID: "itm-pakora", ItemName: "Pakora", Price: price(50)},
		{ID: "itm-roll", ItemName: "Chicken Roll", Price: price(120)},
	},
	"Beverages": {
		{ID: "itm-tea", ItemName: "Tea", Price: price(50)},
		{ID: "itm-lassi", ItemName: "Lassi", Price: price(90)},
		{ID: "itm-juice", ItemName: "Seasonal Juice", Price: price(110)},
	},
	"Desserts": {
		{ID: "itm-kheer", ItemName: "Kheer", Price: price(80)},
		{ID: "itm-jalebi", ItemName: "Jalebi", Price: price(60)},
		{ID: "itm-special", ItemName: "Seasonal Special"},
	},
	"Grocery": {
		{ID: "itm-atta", ItemName: "Wheat Flour 5kg", Price: price(650)},
		{ID: "itm-rice", ItemName: "Basmati Rice 1kg", Price: price(280)},
		{ID: "itm-ghee", ItemName: "Desi Ghee 1kg", Price: price(1500)},
	},
}
