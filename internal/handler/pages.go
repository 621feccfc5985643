package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/catalog"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/stats"
)

//go:embed templates/*.html
var templateFS embed.FS

// deliveryEstimate is shown on every chef card until real estimates exist.
const deliveryEstimate = "~30 min"

// PageCatalog defines the catalog methods the storefront pages need.
// Satisfied by *service.CatalogService.
type PageCatalog interface {
	Home(ctx context.Context) (service.HomeData, error)
	SearchChefs(ctx context.Context, c catalog.ChefCriteria) ([]model.Chef, error)
	GetChefBySlug(ctx context.Context, slug string) (*model.Chef, error)
	ListDishesByChef(ctx context.Context, chefID string) ([]model.Dish, error)
	SearchDishes(ctx context.Context, c catalog.Criteria) ([]model.Dish, error)
}

// PageHandler renders the server-side HTML storefront.
type PageHandler struct {
	catalog   PageCatalog
	reviews   ChefReviewLister
	dashboard DashboardServicer
	logger    *zap.Logger
	pages     map[string]*template.Template
}

// NewPageHandler parses the embedded templates and creates a PageHandler.
func NewPageHandler(catalog PageCatalog, reviews ChefReviewLister, dashboard DashboardServicer, logger *zap.Logger) (*PageHandler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		catalog:   catalog,
		reviews:   reviews,
		dashboard: dashboard,
		logger:    logger,
		pages:     pages,
	}, nil
}

// RegisterRoutes registers page routes at the root of the given Chi router.
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/chefs", h.Chefs)
	r.Get("/chefs/{slug}", h.Chef)
	r.Get("/dishes", h.Dishes)
	r.Get("/dashboard", h.Dashboard)
}

var templateFuncs = template.FuncMap{
	"money": func(m model.Money) string { return "₹" + m.StringFixed(2) },
	"rating": func(v float64) string {
		if v == 0 {
			return "New"
		}
		return fmt.Sprintf("%.1f", v)
	},
	"join":     strings.Join,
	"delivery": func() string { return deliveryEstimate },
	"plural": func(n int, word string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, word)
		}
		return fmt.Sprintf("%d %ss", n, word)
	},
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "chefs", "chef", "dishes", "dashboard", "error"} {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/cards.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// --- Page data ---

type homePage struct {
	Title         string
	FeaturedChefs []model.Chef
	PopularDishes []model.Dish
}

type chefsPage struct {
	Title   string
	Chefs   []model.Chef
	Cuisine string
	Rating  string
	Sort    string
	Sorts   []sortOption
}

type chefPage struct {
	Title   string
	Chef    model.Chef
	Dishes  []model.Dish
	Reviews []model.Review
}

type dishesPage struct {
	Title         string
	Dishes        []model.Dish
	Query         url.Values
	Dietary       map[string]bool
	Sort          string
	Sorts         []sortOption
	DietaryLevels []enum.DietaryPreference
	SpiceLevels   []enum.SpiceLevel
	PriceRanges   []sortOption
}

type dashboardPage struct {
	Title   string
	Stats   stats.Stats
	Revenue string
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

type sortOption struct {
	Value string
	Label string
}

var chefSorts = []sortOption{
	{catalog.SortRating, "Rating"},
	{catalog.SortExperience, "Experience"},
	{catalog.SortNewest, "Newest"},
	{catalog.SortAlphabetical, "A-Z"},
}

var dishSorts = []sortOption{
	{catalog.SortRelevance, "Relevance"},
	{catalog.SortPriceLow, "Price: Low to High"},
	{catalog.SortPriceHigh, "Price: High to Low"},
	{catalog.SortRating, "Rating"},
	{catalog.SortNewest, "Newest"},
}

var priceRanges = []sortOption{
	{"0-200", "Under ₹200"},
	{"200-400", "₹200 - ₹400"},
	{"400-600", "₹400 - ₹600"},
	{"600+", "₹600+"},
}

// --- Handlers ---

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	data, err := h.catalog.Home(r.Context())
	if err != nil {
		h.renderError(w, "home page", err)
		return
	}
	h.render(w, http.StatusOK, "home", homePage{
		Title:         "HomePlate - Home-cooked meals from chefs near you",
		FeaturedChefs: data.FeaturedChefs,
		PopularDishes: data.PopularDishes,
	})
}

// Chefs handles GET /chefs.
func (h *PageHandler) Chefs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := catalog.ParseChefCriteria(q)
	if err != nil {
		h.renderError(w, "chefs page", err)
		return
	}

	chefs, err := h.catalog.SearchChefs(r.Context(), criteria)
	if err != nil {
		h.renderError(w, "chefs page", err)
		return
	}
	sortKey := q.Get("sort")
	if sortKey == "" {
		sortKey = catalog.SortRating
	}
	chefs, err = catalog.SortChefs(chefs, sortKey)
	if err != nil {
		h.renderError(w, "chefs page", err)
		return
	}

	h.render(w, http.StatusOK, "chefs", chefsPage{
		Title:   "Home Chefs - HomePlate",
		Chefs:   chefs,
		Cuisine: q.Get("cuisine"),
		Rating:  q.Get("rating"),
		Sort:    sortKey,
		Sorts:   chefSorts,
	})
}

// Chef handles GET /chefs/{slug}.
func (h *PageHandler) Chef(w http.ResponseWriter, r *http.Request) {
	chef, err := h.catalog.GetChefBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.renderError(w, "chef page", err)
		return
	}
	if chef == nil {
		h.renderError(w, "chef page", service.ErrChefNotFound)
		return
	}

	dishes, err := h.catalog.ListDishesByChef(r.Context(), chef.ID)
	if err != nil {
		h.renderError(w, "chef page", err)
		return
	}
	reviews, err := h.reviews.ListReviewsByChef(r.Context(), chef.ID)
	if err != nil {
		h.renderError(w, "chef page", err)
		return
	}

	h.render(w, http.StatusOK, "chef", chefPage{
		Title:   chef.Title + " - HomePlate",
		Chef:    *chef,
		Dishes:  dishes,
		Reviews: reviews,
	})
}

// Dishes handles GET /dishes.
func (h *PageHandler) Dishes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := catalog.ParseCriteria(q)
	if err != nil {
		h.renderError(w, "dishes page", err)
		return
	}

	dishes, err := h.catalog.SearchDishes(r.Context(), criteria)
	if err != nil {
		h.renderError(w, "dishes page", err)
		return
	}
	dishes, err = catalog.SortDishes(dishes, q.Get("sort"))
	if err != nil {
		h.renderError(w, "dishes page", err)
		return
	}

	selected := make(map[string]bool, len(criteria.Dietary))
	for _, tag := range criteria.Dietary {
		selected[string(tag)] = true
	}
	h.render(w, http.StatusOK, "dishes", dishesPage{
		Title:         "Browse Dishes - HomePlate",
		Dishes:        dishes,
		Query:         q,
		Dietary:       selected,
		Sort:          q.Get("sort"),
		Sorts:         dishSorts,
		DietaryLevels: enum.DietaryPreferences(),
		SpiceLevels:   enum.SpiceLevels(),
		PriceRanges:   priceRanges,
	})
}

// Dashboard handles GET /dashboard.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s := h.dashboard.Stats(r.Context())
	h.render(w, http.StatusOK, "dashboard", dashboardPage{
		Title:   "Dashboard - HomePlate",
		Stats:   s,
		Revenue: "₹" + s.TotalRevenue.StringFixed(2),
	})
}

// --- Rendering ---

// render executes a page into a buffer first so a template failure can
// still produce a clean 500.
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("write page", zap.String("page", name), zap.Error(err))
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, op string, err error) {
	page := errorPage{Title: "HomePlate"}
	switch {
	case service.IsValidation(err):
		page.Status, page.Message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrChefNotFound):
		page.Status, page.Message = http.StatusNotFound, "We couldn't find that chef."
	default:
		h.logger.Error(op, zap.Error(err))
		page.Status, page.Message = http.StatusBadGateway, "Our kitchen is having trouble right now. Please try again shortly."
	}
	h.render(w, page.Status, "error", page)
}
