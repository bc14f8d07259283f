package ingredient

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// seedEntry is one starter catalog row.
type seedEntry struct {
	name     string
	category Category
	aliases  []string
}

var seedCatalog = []seedEntry{
	{"Tomato", CategoryProduce, []string{"tomatoes", "cherry tomatoes"}},
	{"Onion", CategoryProduce, []string{"onions", "yellow onion", "red onion"}},
	{"Green Onion", CategoryProduce, []string{"scallion", "spring onion"}},
	{"Garlic", CategoryProduce, []string{"garlic cloves"}},
	{"Potato", CategoryProduce, []string{"potatoes"}},
	{"Carrot", CategoryProduce, []string{"carrots"}},
	{"Bell Pepper", CategoryProduce, []string{"capsicum", "red pepper", "green pepper"}},
	{"Spinach", CategoryProduce, nil},
	{"Lettuce", CategoryProduce, nil},
	{"Lemon", CategoryProduce, []string{"lemons", "lemon juice"}},
	{"Mushroom", CategoryProduce, []string{"mushrooms"}},
	{"Avocado", CategoryProduce, []string{"avocados"}},
	{"Milk", CategoryDairy, []string{"whole milk"}},
	{"Butter", CategoryDairy, []string{"unsalted butter"}},
	{"Cheddar Cheese", CategoryDairy, []string{"cheddar", "cheese"}},
	{"Parmesan", CategoryDairy, []string{"parmesan cheese", "parmigiano"}},
	{"Yogurt", CategoryDairy, []string{"greek yogurt"}},
	{"Egg", CategoryDairy, []string{"eggs"}},
	{"Chicken Breast", CategoryMeat, []string{"chicken", "chicken breasts"}},
	{"Ground Beef", CategoryMeat, []string{"beef mince", "minced beef"}},
	{"Bacon", CategoryMeat, nil},
	{"Pork Chop", CategoryMeat, []string{"pork chops", "pork"}},
	{"Salmon", CategorySeafood, []string{"salmon fillet"}},
	{"Shrimp", CategorySeafood, []string{"prawns"}},
	{"Tuna", CategorySeafood, []string{"canned tuna"}},
	{"Rice", CategoryGrains, []string{"white rice", "basmati"}},
	{"Pasta", CategoryGrains, []string{"spaghetti", "penne"}},
	{"Bread", CategoryGrains, []string{"white bread", "sourdough"}},
	{"Flour", CategoryGrains, []string{"all purpose flour", "plain flour"}},
	{"Oats", CategoryGrains, []string{"rolled oats", "oatmeal"}},
	{"Salt", CategorySpices, []string{"sea salt", "kosher salt"}},
	{"Black Pepper", CategorySpices, []string{"pepper", "ground pepper"}},
	{"Paprika", CategorySpices, nil},
	{"Cumin", CategorySpices, []string{"ground cumin"}},
	{"Oregano", CategorySpices, []string{"dried oregano"}},
	{"Olive Oil", CategoryCondiments, []string{"extra virgin olive oil"}},
	{"Soy Sauce", CategoryCondiments, nil},
	{"Ketchup", CategoryCondiments, nil},
	{"Mayonnaise", CategoryCondiments, []string{"mayo"}},
	{"Honey", CategoryCondiments, nil},
	{"Frozen Peas", CategoryFrozen, []string{"peas"}},
	{"Frozen Corn", CategoryFrozen, []string{"corn", "sweetcorn"}},
	{"Canned Tomatoes", CategoryCanned, []string{"chopped tomatoes", "tomato passata"}},
	{"Chickpeas", CategoryCanned, []string{"garbanzo beans"}},
	{"Black Beans", CategoryCanned, nil},
	{"Sugar", CategoryOther, []string{"white sugar", "granulated sugar"}},
	{"Chocolate", CategoryOther, []string{"dark chocolate", "chocolate chips"}},
}

// Seed inserts the starter catalog, skipping entries that already exist, and
// returns the number inserted. Safe to run repeatedly.
func (r *Repository) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for _, e := range seedCatalog {
		_, err := r.Create(ctx, CreateParams{
			Name:     e.name,
			Category: e.category,
			Aliases:  e.aliases,
		})
		if errors.Is(err, ErrExists) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("failed to seed %q: %w", e.name, err)
		}
		inserted++
	}
	log.Printf("Seeded %d catalog ingredients", inserted)
	return inserted, nil
}
