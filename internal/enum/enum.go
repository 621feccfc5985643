package enum

// ── Group A: State machines (select-dropdown values owned by the content store) ──

// ChefStatus is the approval state of a chef.
type ChefStatus string

const (
	ChefStatusPending   ChefStatus = "pending"
	ChefStatusApproved  ChefStatus = "approved"
	ChefStatusSuspended ChefStatus = "suspended"
	ChefStatusRejected  ChefStatus = "rejected"
)

func (s ChefStatus) Valid() bool {
	switch s {
	case ChefStatusPending, ChefStatusApproved, ChefStatusSuspended, ChefStatusRejected:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing, OrderStatusReady,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// SubscriptionStatus is the lifecycle state of a meal subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusPaused, SubscriptionStatusCancelled, SubscriptionStatusExpired:
		return true
	}
	return false
}

// ── Group B: Classification labels ──

// DietaryPreference tags a dish with a diet it satisfies.
type DietaryPreference string

const (
	DietaryVegetarian DietaryPreference = "vegetarian"
	DietaryVegan      DietaryPreference = "vegan"
	DietaryGlutenFree DietaryPreference = "gluten_free"
	DietaryDairyFree  DietaryPreference = "dairy_free"
	DietaryKeto       DietaryPreference = "keto"
	DietaryHalal      DietaryPreference = "halal"
	DietaryJain       DietaryPreference = "jain"
)

func (d DietaryPreference) Valid() bool {
	switch d {
	case DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree,
		DietaryKeto, DietaryHalal, DietaryJain:
		return true
	}
	return false
}

// DietaryPreferences lists every tag in display order.
func DietaryPreferences() []DietaryPreference {
	return []DietaryPreference{
		DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree,
		DietaryKeto, DietaryHalal, DietaryJain,
	}
}

// SpiceLevel is how hot a dish is.
type SpiceLevel string

const (
	SpiceMild     SpiceLevel = "mild"
	SpiceMedium   SpiceLevel = "medium"
	SpiceHot      SpiceLevel = "hot"
	SpiceExtraHot SpiceLevel = "extra_hot"
)

func (s SpiceLevel) Valid() bool {
	switch s {
	case SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot:
		return true
	}
	return false
}

// SpiceLevels lists every level from mildest to hottest.
func SpiceLevels() []SpiceLevel {
	return []SpiceLevel{SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot}
}

// ── Group C: Commerce labels ──

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodUPI            PaymentMethod = "upi"
	PaymentMethodWallet         PaymentMethod = "wallet"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodNetBanking     PaymentMethod = "net_banking"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet,
		PaymentMethodCashOnDelivery, PaymentMethodNetBanking:
		return true
	}
	return false
}

type SubscriptionPlan string

const (
	SubscriptionPlanWeekly    SubscriptionPlan = "weekly"
	SubscriptionPlanMonthly   SubscriptionPlan = "monthly"
	SubscriptionPlanQuarterly SubscriptionPlan = "quarterly"
)

// ── Object types (content-store type slugs) ──

const (
	TypeChefs         = "chefs"
	TypeDishes        = "dishes"
	TypeOrders        = "orders"
	TypeCustomers     = "customers"
	TypeReviews       = "reviews"
	TypeSubscriptions = "subscriptions"
)
