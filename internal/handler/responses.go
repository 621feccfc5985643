package handler

import (
	"time"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// --- Response types ---

type chefResponse struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Name            string     `json:"name"`
	Bio             string     `json:"bio,omitempty"`
	Specialties     []string   `json:"specialties"`
	Cuisines        []string   `json:"cuisines"`
	Rating          float64    `json:"rating"`
	ExperienceYears int        `json:"experience_years"`
	Address         string     `json:"address,omitempty"`
	Status          string     `json:"status"`
	Available       bool       `json:"available"`
	ImageURL        string     `json:"image_url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

type dishChefResponse struct {
	ID     string  `json:"id"`
	Slug   string  `json:"slug,omitempty"`
	Name   string  `json:"name,omitempty"`
	Rating float64 `json:"rating"`
}

type dishResponse struct {
	ID                 string            `json:"id"`
	Slug               string            `json:"slug"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	Price              string            `json:"price"`
	CuisineType        string            `json:"cuisine_type,omitempty"`
	Category           string            `json:"category,omitempty"`
	DietaryPreferences []string          `json:"dietary_preferences"`
	SpiceLevel         string            `json:"spice_level,omitempty"`
	PrepTime           int               `json:"prep_time,omitempty"`
	PortionSize        string            `json:"portion_size,omitempty"`
	Available          bool              `json:"available"`
	ImageURL           string            `json:"image_url,omitempty"`
	Chef               *dishChefResponse `json:"chef"`
	CreatedAt          *time.Time        `json:"created_at,omitempty"`
}

type orderDishResponse struct {
	DishID   string `json:"dish_id"`
	Name     string `json:"name,omitempty"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type orderResponse struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	CustomerID          string              `json:"customer_id"`
	ChefID              string              `json:"chef_id"`
	Status              string              `json:"status"`
	Dishes              []orderDishResponse `json:"dishes"`
	TotalAmount         string              `json:"total_amount"`
	DeliveryFee         *string             `json:"delivery_fee"`
	TaxAmount           *string             `json:"tax_amount"`
	DiscountAmount      *string             `json:"discount_amount"`
	PaymentMethod       string              `json:"payment_method,omitempty"`
	DeliveryAddress     *model.Address      `json:"delivery_address,omitempty"`
	DeliveryTime        string              `json:"delivery_time,omitempty"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	OrderDate           string              `json:"order_date"`
	TrackingInfo        *model.TrackingInfo `json:"tracking_info,omitempty"`
}

type reviewResponse struct {
	ID                string  `json:"id"`
	CustomerID        string  `json:"customer_id"`
	CustomerName      string  `json:"customer_name,omitempty"`
	ChefID            string  `json:"chef_id"`
	OrderID           string  `json:"order_id"`
	Rating            float64 `json:"rating"`
	FoodQualityRating float64 `json:"food_quality_rating"`
	PackagingRating   float64 `json:"packaging_rating"`
	DeliveryRating    float64 `json:"delivery_rating"`
	Comment           string  `json:"comment,omitempty"`
	ReviewDate        string  `json:"review_date"`
	HelpfulCount      int     `json:"helpful_count"`
}

// --- Conversion helpers ---

func toChefResponse(c model.Chef) chefResponse {
	resp := chefResponse{
		ID:              c.ID,
		Slug:            c.Slug,
		Name:            c.Title,
		Bio:             c.Metadata.Bio,
		Specialties:     nonNil(c.Metadata.Specialties),
		Cuisines:        nonNil(c.Metadata.Cuisines),
		Rating:          c.Metadata.Rating,
		ExperienceYears: c.Metadata.ExperienceYears,
		Address:         c.Metadata.Address,
		Status:          string(c.Metadata.Status),
		Available:       c.Metadata.Availability,
		CreatedAt:       c.CreatedAt,
	}
	if c.Metadata.ProfileImage != nil {
		resp.ImageURL = c.Metadata.ProfileImage.ImgixURL
	}
	return resp
}

func toChefResponses(chefs []model.Chef) []chefResponse {
	out := make([]chefResponse, len(chefs))
	for i, c := range chefs {
		out[i] = toChefResponse(c)
	}
	return out
}

func toDishResponse(d model.Dish) dishResponse {
	tags := make([]string, len(d.Metadata.DietaryPreferences))
	for i, t := range d.Metadata.DietaryPreferences {
		tags[i] = string(t)
	}
	resp := dishResponse{
		ID:                 d.ID,
		Slug:               d.Slug,
		Name:               d.Title,
		Description:        d.Metadata.Description,
		Price:              d.Metadata.Price.StringFixed(2),
		CuisineType:        d.Metadata.CuisineType,
		Category:           d.Metadata.Category,
		DietaryPreferences: tags,
		SpiceLevel:         string(d.Metadata.SpiceLevel),
		PrepTime:           d.Metadata.PrepTime,
		PortionSize:        d.Metadata.PortionSize,
		Available:          d.Metadata.Availability,
		CreatedAt:          d.CreatedAt,
	}
	if d.Metadata.DishImage != nil {
		resp.ImageURL = d.Metadata.DishImage.ImgixURL
	}
	if ref := d.Metadata.Chef; ref.ID != "" || ref.Resolved() {
		resp.Chef = &dishChefResponse{ID: ref.ID}
		if ref.Resolved() {
			resp.Chef.Slug = ref.Object.Slug
			resp.Chef.Name = ref.Object.Title
			resp.Chef.Rating = ref.Object.Metadata.Rating
		}
	}
	return resp
}

func toDishResponses(dishes []model.Dish) []dishResponse {
	out := make([]dishResponse, len(dishes))
	for i, d := range dishes {
		out[i] = toDishResponse(d)
	}
	return out
}

func toOrderResponse(o model.Order) orderResponse {
	dishes := make([]orderDishResponse, len(o.Metadata.Dishes))
	for i, d := range o.Metadata.Dishes {
		dishes[i] = orderDishResponse{
			DishID:   d.Dish.ID,
			Quantity: d.Quantity,
			Price:    d.Price.StringFixed(2),
		}
		if d.Dish.Resolved() {
			dishes[i].Name = d.Dish.Object.Title
		}
	}
	return orderResponse{
		ID:                  o.ID,
		Title:               o.Title,
		CustomerID:          o.Metadata.Customer.ID,
		ChefID:              o.Metadata.Chef.ID,
		Status:              string(o.Metadata.Status),
		Dishes:              dishes,
		TotalAmount:         o.Metadata.TotalAmount.StringFixed(2),
		DeliveryFee:         moneyPtr(o.Metadata.DeliveryFee),
		TaxAmount:           moneyPtr(o.Metadata.TaxAmount),
		DiscountAmount:      moneyPtr(o.Metadata.DiscountAmount),
		PaymentMethod:       string(o.Metadata.PaymentMethod),
		DeliveryAddress:     o.Metadata.DeliveryAddress,
		DeliveryTime:        o.Metadata.DeliveryTime,
		SpecialInstructions: o.Metadata.SpecialInstructions,
		OrderDate:           o.Metadata.OrderDate,
		TrackingInfo:        o.Metadata.TrackingInfo,
	}
}

func toOrderResponses(orders []model.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toReviewResponse(r model.Review) reviewResponse {
	resp := reviewResponse{
		ID:                r.ID,
		CustomerID:        r.Metadata.Customer.ID,
		ChefID:            r.Metadata.Chef.ID,
		OrderID:           r.Metadata.Order.ID,
		Rating:            r.Metadata.Rating,
		FoodQualityRating: r.Metadata.FoodQualityRating,
		PackagingRating:   r.Metadata.PackagingRating,
		DeliveryRating:    r.Metadata.DeliveryRating,
		Comment:           r.Metadata.Comment,
		ReviewDate:        r.Metadata.ReviewDate,
		HelpfulCount:      r.Metadata.HelpfulCount,
	}
	if r.Metadata.Customer.Resolved() {
		resp.CustomerName = r.Metadata.Customer.Object.Title
	}
	return resp
}

func toReviewResponses(reviews []model.Review) []reviewResponse {
	out := make([]reviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = toReviewResponse(r)
	}
	return out
}

func moneyPtr(m *model.Money) *string {
	if m == nil {
		return nil
	}
	s := m.StringFixed(2)
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
