package taxonomy

// DefaultFallbackParent is the parent category assigned when classification
// has no anchors to compare against. Configurable at the classifier level;
// this is only the out-of-the-box choice.
const DefaultFallbackParent = "Pantry & Dry Goods"

// defaultParents returns the built-in grocery category tree: ten parent
// categories, each owning subcategories seeded with example product names.
func defaultParents() []ParentCategory {
	return []ParentCategory{
		{
			Name: "Produce",
			Subs: []SubCategory{
				{Name: "Fresh Fruits", Examples: "apples, bananas, grapes, strawberries, oranges, blueberries, watermelon"},
				{Name: "Fresh Vegetables", Examples: "broccoli, carrots, bell peppers, onions, potatoes, tomatoes, cucumbers"},
				{Name: "Salads & Herbs", Examples: "bagged salad mix, romaine lettuce, spinach, cilantro, basil"},
				{Name: "Organic Produce", Examples: "organic apples, organic kale, organic baby carrots"},
			},
		},
		{
			Name: "Meat & Seafood",
			Subs: []SubCategory{
				{Name: "Beef", Examples: "ground beef, ribeye steak, chuck roast, beef brisket"},
				{Name: "Pork", Examples: "pork chops, pork loin, pork shoulder, ribs"},
				{Name: "Poultry", Examples: "chicken breast, chicken thighs, whole chicken, ground turkey"},
				{Name: "Seafood & Fish", Examples: "salmon fillet, shrimp, tilapia, cod, tuna steaks"},
				{Name: "Deli Meats", Examples: "sliced turkey, ham, salami, roast beef lunch meat"},
				{Name: "Sausage & Bacon", Examples: "bacon, breakfast sausage, bratwurst, hot dogs"},
			},
		},
		{
			Name: "Dairy & Eggs",
			Subs: []SubCategory{
				{Name: "Milk", Examples: "whole milk, 2% milk, almond milk, oat milk"},
				{Name: "Cheese", Examples: "cheddar cheese, shredded mozzarella, cream cheese, string cheese"},
				{Name: "Yogurt", Examples: "Greek yogurt, yogurt cups, kefir"},
				{Name: "Butter & Margarine", Examples: "salted butter, unsalted butter, margarine spread"},
				{Name: "Eggs", Examples: "large eggs, dozen eggs, egg whites, cage-free eggs"},
				{Name: "Cream & Creamers", Examples: "heavy whipping cream, half and half, coffee creamer, sour cream"},
			},
		},
		{
			Name: "Bakery",
			Subs: []SubCategory{
				{Name: "Bread", Examples: "white bread, whole wheat bread, sourdough loaf, bagels"},
				{Name: "Buns & Rolls", Examples: "hamburger buns, hot dog buns, dinner rolls, croissants"},
				{Name: "Pastries & Donuts", Examples: "donuts, muffins, danishes, cinnamon rolls"},
				{Name: "Cakes & Desserts", Examples: "birthday cake, cupcakes, pies, cheesecake"},
				{Name: "Tortillas & Flatbreads", Examples: "flour tortillas, corn tortillas, pita bread, naan"},
			},
		},
		{
			Name: "Beverages",
			Subs: []SubCategory{
				{Name: "Soda & Soft Drinks", Examples: "Coke, Pepsi, Energy drinks, Sprite, root beer, ginger ale, 12-pack cans"},
				{Name: "Juice", Examples: "orange juice, apple juice, cranberry juice cocktail, lemonade"},
				{Name: "Water", Examples: "bottled water, sparkling water, seltzer, spring water 24-pack"},
				{Name: "Coffee", Examples: "ground coffee, whole bean coffee, K-cups, instant coffee, cold brew"},
				{Name: "Tea", Examples: "tea bags, green tea, iced tea, kombucha"},
				{Name: "Sports & Energy Drinks", Examples: "Gatorade, Powerade, Red Bull, Monster, electrolyte drinks"},
				{Name: "Beer & Wine", Examples: "beer 6-pack, craft IPA, red wine, white wine, hard seltzer"},
			},
		},
		{
			Name: "Frozen Foods",
			Subs: []SubCategory{
				{Name: "Frozen Meals", Examples: "frozen dinners, frozen burritos, frozen lasagna, TV dinners"},
				{Name: "Frozen Pizza", Examples: "frozen pizza, rising crust pizza, pizza rolls"},
				{Name: "Ice Cream & Frozen Desserts", Examples: "ice cream, gelato, popsicles, frozen yogurt, ice cream sandwiches"},
				{Name: "Frozen Vegetables & Fruit", Examples: "frozen peas, frozen corn, frozen berries, frozen broccoli"},
				{Name: "Frozen Breakfast", Examples: "frozen waffles, breakfast sandwiches, hash browns, toaster strudel"},
			},
		},
		{
			Name: "Pantry & Dry Goods",
			Subs: []SubCategory{
				{Name: "Cereal & Breakfast", Examples: "breakfast cereal, oatmeal, granola, pancake mix, syrup"},
				{Name: "Pasta & Rice", Examples: "spaghetti, penne, white rice, brown rice, mac and cheese"},
				{Name: "Canned Goods", Examples: "canned beans, canned corn, canned tomatoes, canned tuna, canned fruit"},
				{Name: "Condiments & Sauces", Examples: "ketchup, mustard, mayonnaise, salsa, pasta sauce, BBQ sauce, soy sauce"},
				{Name: "Baking Supplies", Examples: "flour, sugar, baking soda, chocolate chips, cake mix, vanilla extract"},
				{Name: "Oils & Vinegar", Examples: "olive oil, vegetable oil, canola oil, balsamic vinegar, cooking spray"},
				{Name: "Soup & Broth", Examples: "canned soup, chicken broth, ramen noodles, instant soup"},
				{Name: "Spices & Seasonings", Examples: "salt, black pepper, garlic powder, taco seasoning, cinnamon"},
				{Name: "Spreads & Jams", Examples: "peanut butter, jelly, jam, honey, Nutella"},
			},
		},
		{
			Name: "Snacks & Candy",
			Subs: []SubCategory{
				{Name: "Chips & Crisps", Examples: "potato chips, tortilla chips, Doritos, Pringles, veggie straws"},
				{Name: "Crackers", Examples: "saltine crackers, cheese crackers, Ritz, graham crackers"},
				{Name: "Cookies", Examples: "chocolate chip cookies, Oreos, sandwich cookies, wafers"},
				{Name: "Candy & Chocolate", Examples: "chocolate bars, gummy bears, M&Ms, hard candy, licorice"},
				{Name: "Nuts & Trail Mix", Examples: "almonds, cashews, peanuts, mixed nuts, trail mix, dried fruit"},
				{Name: "Granola & Snack Bars", Examples: "granola bars, protein bars, fruit snacks, rice cakes"},
				{Name: "Popcorn & Pretzels", Examples: "microwave popcorn, kettle corn, pretzels, snack mix"},
			},
		},
		{
			Name: "Household & Cleaning",
			Subs: []SubCategory{
				{Name: "Paper Products", Examples: "paper towels, toilet paper, napkins, facial tissue"},
				{Name: "Laundry Care", Examples: "laundry detergent, fabric softener, dryer sheets, stain remover"},
				{Name: "Cleaning Supplies", Examples: "all-purpose cleaner, disinfecting wipes, bleach, glass cleaner, sponges"},
				{Name: "Trash Bags & Foil", Examples: "trash bags, aluminum foil, plastic wrap, sandwich bags"},
				{Name: "Dish Care", Examples: "dish soap, dishwasher pods, rinse aid"},
			},
		},
		{
			Name: "Health & Personal Care",
			Subs: []SubCategory{
				{Name: "Oral Care", Examples: "toothpaste, toothbrushes, mouthwash, dental floss"},
				{Name: "Hair Care", Examples: "shampoo, conditioner, hair spray, styling gel"},
				{Name: "Skin Care & Soap", Examples: "body wash, bar soap, lotion, hand soap, deodorant"},
				{Name: "Vitamins & Supplements", Examples: "multivitamins, vitamin C, fish oil, protein powder"},
				{Name: "Medicine & First Aid", Examples: "pain reliever, ibuprofen, cold medicine, allergy relief, band-aids"},
				{Name: "Baby Care", Examples: "diapers, baby wipes, baby formula, baby food"},
				{Name: "Pet Food & Supplies", Examples: "dog food, cat food, cat litter, pet treats"},
			},
		},
	}
}
