// Package seed generates demo chefs, dishes and customers and writes them
// into the content store.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// Inserter creates content-store objects.
// Satisfied by *cosmic.Client; narrow interface for testability.
type Inserter interface {
	InsertOne(ctx context.Context, objectType string, obj any, out any) error
}

// Options controls how much demo data is generated.
type Options struct {
	Chefs         int
	DishesPerChef int
	Customers     int
	Seed          int64
}

// Object is an insert payload in the shape the content store expects.
type Object struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Metadata any    `json:"metadata"`
}

// ChefPlan is one chef with the dishes to create once the chef has an ID.
type ChefPlan struct {
	Chef   Object   `json:"chef"`
	Dishes []Object `json:"dishes"`
}

// Plan is the full set of objects a seeding run will insert.
type Plan struct {
	Chefs     []ChefPlan `json:"chefs"`
	Customers []Object   `json:"customers"`
}

// Result counts inserted objects.
type Result struct {
	Chefs     int
	Dishes    int
	Customers int
}

var (
	cuisines = []string{
		"North Indian", "South Indian", "Kerala", "Bengali", "Gujarati",
		"Punjabi", "Hyderabadi", "Chettinad", "Goan", "Indo-Chinese",
	}
	dishNames = map[string][]string{
		"North Indian": {"Dal Makhani", "Paneer Butter Masala", "Rajma Chawal", "Aloo Paratha"},
		"South Indian": {"Masala Dosa", "Idli Sambar", "Curd Rice", "Bisi Bele Bath"},
		"Kerala":       {"Appam & Stew", "Puttu Kadala", "Avial", "Fish Moilee"},
		"Bengali":      {"Shorshe Ilish", "Aloo Posto", "Cholar Dal", "Mishti Doi"},
		"Gujarati":     {"Dhokla", "Undhiyu", "Thepla", "Kadhi Khichdi"},
		"Punjabi":      {"Sarson da Saag", "Chole Bhature", "Amritsari Kulcha", "Lassi"},
		"Hyderabadi":   {"Dum Biryani", "Mirchi ka Salan", "Haleem", "Double ka Meetha"},
		"Chettinad":    {"Chicken Chettinad", "Kuzhi Paniyaram", "Kara Kuzhambu", "Mushroom Pepper Fry"},
		"Goan":         {"Xacuti", "Prawn Balchao", "Bebinca", "Goan Fish Curry"},
		"Indo-Chinese": {"Veg Hakka Noodles", "Gobi Manchurian", "Chilli Paneer", "Schezwan Fried Rice"},
	}
	specialties = []string{
		"Home-style curries", "Festival sweets", "Tiffin meals", "Street food",
		"Millet recipes", "Coastal seafood", "Slow-cooked biryani", "Breakfast staples",
	}
	categories = []string{"main_course", "breakfast", "snacks", "desserts", "thali"}
	portions   = []string{"1 plate", "2 servings", "500 g", "4 pieces"}
)

// Generator produces deterministic demo objects for a given seed.
type Generator struct {
	fake faker.Faker
}

// NewGenerator returns a generator whose output depends only on seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

// Plan builds every object for opts without touching the content store.
func (g *Generator) Plan(opts Options) Plan {
	plan := Plan{
		Chefs:     make([]ChefPlan, 0, opts.Chefs),
		Customers: make([]Object, 0, opts.Customers),
	}
	for i := 0; i < opts.Chefs; i++ {
		chef := g.Chef()
		cp := ChefPlan{Chef: chef, Dishes: make([]Object, 0, opts.DishesPerChef)}
		meta := chef.Metadata.(model.ChefMetadata)
		for j := 0; j < opts.DishesPerChef; j++ {
			cp.Dishes = append(cp.Dishes, g.Dish(meta.Cuisines[0]))
		}
		plan.Chefs = append(plan.Chefs, cp)
	}
	for i := 0; i < opts.Customers; i++ {
		plan.Customers = append(plan.Customers, g.Customer())
	}
	return plan
}

// Chef generates an approved, available chef.
func (g *Generator) Chef() Object {
	fake := g.fake
	primary := fake.RandomStringElement(cuisines)
	chefCuisines := []string{primary}
	if second := fake.RandomStringElement(cuisines); second != primary {
		chefCuisines = append(chefCuisines, second)
	}

	return Object{
		Type:  enum.TypeChefs,
		Title: fake.Person().Name(),
		Metadata: model.ChefMetadata{
			Bio:             fake.Lorem().Sentence(14),
			Specialties:     []string{fake.RandomStringElement(specialties)},
			Phone:           fake.Phone().Number(),
			Email:           fake.Internet().Email(),
			Rating:          fake.Float64(1, 3, 5),
			Address:         fake.Address().StreetAddress() + ", " + fake.Address().City(),
			Availability:    true,
			Cuisines:        chefCuisines,
			ExperienceYears: fake.IntBetween(1, 25),
			Status:          enum.ChefStatusApproved,
			CommissionRate:  15,
		},
	}
}

// Dish generates an available dish in the given cuisine. The chef
// relation is left empty and filled in by Run.
func (g *Generator) Dish(cuisine string) Object {
	fake := g.fake
	names, ok := dishNames[cuisine]
	if !ok {
		names = dishNames["North Indian"]
	}
	name := fake.RandomStringElement(names)

	// Prices are whole rupees in steps of 10, between 80 and 450.
	price := decimal.NewFromInt(int64(fake.IntBetween(8, 45)) * 10)

	var dietary []enum.DietaryPreference
	for _, tag := range enum.DietaryPreferences() {
		if fake.IntBetween(1, 4) == 1 {
			dietary = append(dietary, tag)
		}
	}
	spice := enum.SpiceLevels()
	level := spice[fake.IntBetween(0, len(spice)-1)]

	return Object{
		Type:  enum.TypeDishes,
		Title: name,
		Metadata: model.DishMetadata{
			Description:        fake.Lorem().Sentence(10),
			Price:              model.MoneyOf(price),
			Ingredients:        strings.Fields(strings.ToLower(name)),
			PortionSize:        fake.RandomStringElement(portions),
			PrepTime:           fake.IntBetween(15, 90),
			CuisineType:        cuisine,
			DietaryPreferences: dietary,
			SpiceLevel:         level,
			Availability:       true,
			Category:           fake.RandomStringElement(categories),
		},
	}
}

// Customer generates a customer with one default address.
func (g *Generator) Customer() Object {
	fake := g.fake
	addr := fake.Address()
	return Object{
		Type:  enum.TypeCustomers,
		Title: fake.Person().Name(),
		Metadata: model.CustomerMetadata{
			Email: fake.Internet().Email(),
			Phone: fake.Phone().Number(),
			Addresses: []model.Address{{
				Label:      "Home",
				Street:     addr.StreetAddress(),
				City:       addr.City(),
				State:      addr.State(),
				PostalCode: addr.PostCode(),
				IsDefault:  true,
			}},
		},
	}
}

// Run inserts plan into the store. Each chef is created before its dishes
// so the dish relation can point at the new chef ID. Insertion stops at the
// first error; objects already written stay in the store.
func Run(ctx context.Context, store Inserter, plan Plan, logger *zap.Logger) (Result, error) {
	var res Result
	batch := cuid.New()
	logger = logger.With(zap.String("batch", batch))

	for _, cp := range plan.Chefs {
		var chef model.Chef
		if err := store.InsertOne(ctx, enum.TypeChefs, cp.Chef, &chef); err != nil {
			return res, fmt.Errorf("insert chef %q: %w", cp.Chef.Title, err)
		}
		res.Chefs++
		logger.Info("chef seeded", zap.String("chef_id", chef.ID), zap.String("title", cp.Chef.Title))

		for _, d := range cp.Dishes {
			meta := d.Metadata.(model.DishMetadata)
			meta.Chef = model.RefTo[model.Chef](chef.ID)
			d.Metadata = meta
			if err := store.InsertOne(ctx, enum.TypeDishes, d, nil); err != nil {
				return res, fmt.Errorf("insert dish %q: %w", d.Title, err)
			}
			res.Dishes++
		}
	}

	for _, c := range plan.Customers {
		if err := store.InsertOne(ctx, enum.TypeCustomers, c, nil); err != nil {
			return res, fmt.Errorf("insert customer %q: %w", c.Title, err)
		}
		res.Customers++
	}

	logger.Info("seed completed",
		zap.Int("chefs", res.Chefs),
		zap.Int("dishes", res.Dishes),
		zap.Int("customers", res.Customers),
	)
	return res, nil
}
