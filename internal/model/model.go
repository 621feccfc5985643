package model

import (
	"encoding/json"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
)

// --- Chefs ---

type Chef struct {
	Object
	Metadata ChefMetadata `json:"metadata"`
}

type ChefMetadata struct {
	Bio             string          `json:"bio,omitempty"`
	Specialties     []string        `json:"specialties,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Rating          float64         `json:"rating,omitempty"`
	ProfileImage    *Image          `json:"profile_image,omitempty"`
	LicenseImage    *Image          `json:"license_image,omitempty"`
	Address         string          `json:"address,omitempty"`
	Availability    bool            `json:"availability"`
	Cuisines        []string        `json:"cuisines,omitempty"`
	ExperienceYears int             `json:"experience_years,omitempty"`
	Status          enum.ChefStatus `json:"status"`
	CommissionRate  float64         `json:"commission_rate,omitempty"`
}

func (m *ChefMetadata) UnmarshalJSON(b []byte) error {
	type plain ChefMetadata
	aux := struct {
		*plain
		Rating          Number `json:"rating"`
		ExperienceYears Number `json:"experience_years"`
		CommissionRate  Number `json:"commission_rate"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.Rating = float64(aux.Rating)
	m.ExperienceYears = int(aux.ExperienceYears)
	m.CommissionRate = float64(aux.CommissionRate)
	return nil
}

// Active reports whether the chef can currently take orders.
func (c Chef) Active() bool {
	return c.Metadata.Status == enum.ChefStatusApproved && c.Metadata.Availability
}

// --- Dishes ---

type Dish struct {
	Object
	Metadata DishMetadata `json:"metadata"`
}

type DishMetadata struct {
	Chef               Ref[Chef]                `json:"chef"`
	Description        string                   `json:"description,omitempty"`
	Price              Money                    `json:"price"`
	Ingredients        []string                 `json:"ingredients,omitempty"`
	Allergens          []string                 `json:"allergens,omitempty"`
	PortionSize        string                   `json:"portion_size,omitempty"`
	PrepTime           int                      `json:"prep_time,omitempty"`
	CuisineType        string                   `json:"cuisine_type,omitempty"`
	DietaryPreferences []enum.DietaryPreference `json:"dietary_preferences,omitempty"`
	SpiceLevel         enum.SpiceLevel          `json:"spice_level,omitempty"`
	Availability       bool                     `json:"availability"`
	Category           string                   `json:"category,omitempty"`
	DishImage          *Image                   `json:"dish_image,omitempty"`
	NutritionInfo      *NutritionInfo           `json:"nutrition_info,omitempty"`
}

func (m *DishMetadata) UnmarshalJSON(b []byte) error {
	type plain DishMetadata
	aux := struct {
		*plain
		PrepTime Number `json:"prep_time"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.PrepTime = int(aux.PrepTime)
	return nil
}

type NutritionInfo struct {
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// ChefRating returns the embedded chef's rating, or 0 when the chef
// snapshot is absent.
func (d Dish) ChefRating() float64 {
	if d.Metadata.Chef.Object == nil {
		return 0
	}
	return d.Metadata.Chef.Object.Metadata.Rating
}

// HasDietary reports whether the dish carries the given tag.
func (d Dish) HasDietary(tag enum.DietaryPreference) bool {
	for _, t := range d.Metadata.DietaryPreferences {
		if t == tag {
			return true
		}
	}
	return false
}

// --- Customers ---

type Customer struct {
	Object
	Metadata CustomerMetadata `json:"metadata"`
}

type CustomerMetadata struct {
	Email         string               `json:"email,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	Addresses     []Address            `json:"addresses,omitempty"`
	Preferences   *CustomerPreferences `json:"preferences,omitempty"`
	LoyaltyPoints int                  `json:"loyalty_points,omitempty"`
	ProfileImage  *Image               `json:"profile_image,omitempty"`
}

type CustomerPreferences struct {
	Cuisines            []string        `json:"cuisines,omitempty"`
	DietaryRestrictions []string        `json:"dietary_restrictions,omitempty"`
	SpiceLevel          enum.SpiceLevel `json:"spice_level,omitempty"`
}

type Address struct {
	Label       string       `json:"label,omitempty"`
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	PostalCode  string       `json:"postal_code"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	IsDefault   bool         `json:"is_default,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// --- Orders ---

type Order struct {
	Object
	Metadata OrderMetadata `json:"metadata"`
}

type OrderMetadata struct {
	Customer            Ref[Customer]      `json:"customer"`
	Chef                Ref[Chef]          `json:"chef"`
	Dishes              []OrderDish        `json:"dishes"`
	Status              enum.OrderStatus   `json:"status"`
	TotalAmount         Money              `json:"total_amount"`
	DeliveryAddress     *Address           `json:"delivery_address,omitempty"`
	PaymentMethod       enum.PaymentMethod `json:"payment_method,omitempty"`
	DeliveryTime        string             `json:"delivery_time,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	OrderDate           string             `json:"order_date"`
	EstimatedDelivery   string             `json:"estimated_delivery,omitempty"`
	DeliveryFee         *Money             `json:"delivery_fee,omitempty"`
	TaxAmount           *Money             `json:"tax_amount,omitempty"`
	DiscountAmount      *Money             `json:"discount_amount,omitempty"`
	TrackingInfo        *TrackingInfo      `json:"tracking_info,omitempty"`
}

// OrderDish is a line item.
type OrderDish struct {
	Dish           Ref[Dish]       `json:"dish"`
	Quantity       int             `json:"quantity"`
	Customizations *Customizations `json:"customizations,omitempty"`
	Price          Money           `json:"price"`
}

type Customizations struct {
	SpiceLevel      enum.SpiceLevel `json:"spice_level,omitempty"`
	SpecialRequests string          `json:"special_requests,omitempty"`
}

// TrackingInfo records when an order passed each stage.
type TrackingInfo struct {
	OrderPlaced        string `json:"order_placed,omitempty"`
	ChefAccepted       string `json:"chef_accepted,omitempty"`
	PreparationStarted string `json:"preparation_started,omitempty"`
	ReadyForPickup     string `json:"ready_for_pickup,omitempty"`
	OutForDelivery     string `json:"out_for_delivery,omitempty"`
	Delivered          string `json:"delivered,omitempty"`
}

// --- Reviews ---

type Review struct {
	Object
	Metadata ReviewMetadata `json:"metadata"`
}

type ReviewMetadata struct {
	Customer          Ref[Customer] `json:"customer"`
	Chef              Ref[Chef]     `json:"chef"`
	Order             Ref[Order]    `json:"order"`
	Rating            float64       `json:"rating"`
	FoodQualityRating float64       `json:"food_quality_rating,omitempty"`
	PackagingRating   float64       `json:"packaging_rating,omitempty"`
	DeliveryRating    float64       `json:"delivery_rating,omitempty"`
	Comment           string        `json:"comment,omitempty"`
	ReviewDate        string        `json:"review_date"`
	HelpfulCount      int           `json:"helpful_count"`
}

func (m *ReviewMetadata) UnmarshalJSON(b []byte) error {
	type plain ReviewMetadata
	aux := struct {
		*plain
		Rating            Number `json:"rating"`
		FoodQualityRating Number `json:"food_quality_rating"`
		PackagingRating   Number `json:"packaging_rating"`
		DeliveryRating    Number `json:"delivery_rating"`
		HelpfulCount      Number `json:"helpful_count"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.Rating = float64(aux.Rating)
	m.FoodQualityRating = float64(aux.FoodQualityRating)
	m.PackagingRating = float64(aux.PackagingRating)
	m.DeliveryRating = float64(aux.DeliveryRating)
	m.HelpfulCount = int(aux.HelpfulCount)
	return nil
}

// --- Subscriptions ---

type Subscription struct {
	Object
	Metadata SubscriptionMetadata `json:"metadata"`
}

type SubscriptionMetadata struct {
	Customer     Ref[Customer]            `json:"customer"`
	Chef         Ref[Chef]                `json:"chef"`
	PlanType     enum.SubscriptionPlan    `json:"plan_type"`
	Status       enum.SubscriptionStatus  `json:"status"`
	StartDate    string                   `json:"start_date"`
	EndDate      string                   `json:"end_date,omitempty"`
	DeliveryDays []string                 `json:"delivery_days,omitempty"`
	MealCount    int                      `json:"meal_count,omitempty"`
	TotalAmount  Money                    `json:"total_amount"`
	AutoRenewal  bool                     `json:"auto_renewal,omitempty"`
	Preferences  *SubscriptionPreferences `json:"preferences,omitempty"`
}

type SubscriptionPreferences struct {
	Dishes              []Ref[Dish] `json:"dishes,omitempty"`
	DietaryRestrictions []string    `json:"dietary_restrictions,omitempty"`
}
