package catalog

// DefaultDishes seeds the catalog: common dishes with a portion and style,
// written the way suggestions are shown to users.
var DefaultDishes = []string{
	"150g Grilled Chicken Breast (boneless, skinless)",
	"150g Baked Chicken Breast (herb seasoned)",
	"150g Pan-Seared Chicken Breast (with olive oil)",
	"Chicken Tikka (6 pieces, tandoor grilled)",
	"Chicken Curry (1 bowl, home style)",
	"Chicken Biryani (1 plate, Hyderabadi)",
	"Chicken Soup (1 bowl, clear)",
	"Butter Chicken (1 cup, with gravy)",
	"Tandoori Chicken (2 legs, skin removed)",
	"Chicken Caesar Salad (1 bowl, light dressing)",
	"2 Boiled Eggs (large)",
	"2 Egg Omelette (with onions and chillies)",
	"Egg Bhurji (2 eggs, Indian style)",
	"Egg Curry (2 eggs, with gravy)",
	"Egg Fried Rice (1 bowl)",
	"Scrambled Eggs (2 eggs, with butter)",
	"Poached Eggs (2 eggs, on toast)",
	"1 Cup White Rice (steamed)",
	"1 Cup Brown Rice (cooked)",
	"1 Cup Basmati Rice (plain)",
	"1 Cup Jeera Rice (cumin tempered)",
	"Curd Rice (1 bowl, tempered)",
	"Lemon Rice (1 bowl, South Indian)",
	"Pizza Slice (cheese, regular crust)",
	"Pizza Slice (pepperoni, thin crust)",
	"Pizza Slice (margherita, wood-fired)",
	"Pizza Slice (veggie, thick crust)",
	"Masala Dosa (1 piece, with sambar)",
	"Plain Dosa (1 piece, with chutney)",
	"Idli (2 pieces, with sambar)",
	"Medu Vada (2 pieces)",
	"Upma (1 bowl, rava)",
	"Poha (1 plate, with peanuts)",
	"Dal Tadka (1 bowl)",
	"Dal Makhani (1 bowl, restaurant style)",
	"Rajma Chawal (1 plate)",
	"Chole (1 bowl, Punjabi style)",
	"Paneer Tikka (6 pieces, grilled)",
	"Palak Paneer (1 cup)",
	"Chapati (2 pieces, whole wheat)",
	"Phulka (3 pieces, no ghee)",
	"Aloo Paratha (1 piece, with curd)",
	"Fish Curry (1 bowl, coastal style)",
	"Grilled Fish (150g, lemon pepper)",
	"Prawn Masala (1 cup)",
	"Mutton Curry (1 bowl, home style)",
	"Mutton Biryani (1 plate)",
	"Greek Yogurt (1 cup, plain)",
	"Oatmeal (1 bowl, with milk)",
	"Banana (1 medium)",
	"Apple (1 medium)",
	"Papaya (1 cup, cubed)",
	"Sprouts Salad (1 bowl)",
	"Whole Wheat Toast (2 slices, with butter)",
	"Peanut Butter Toast (1 slice)",
	"Masala Chai (1 cup, with sugar)",
	"Filter Coffee (1 cup, with milk)",
	"Buttermilk (1 glass, spiced)",
	"Protein Shake (1 scoop, with water)",
	"Vegetable Sandwich (1 piece, grilled)",
}
