package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/metrics"
	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/queue"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/service"
)

// AccommodationHandler serves lodging listings, details, reviews and images.
type AccommodationHandler struct {
	Accommodations *repository.AccommodationRepo
	Reviews        *repository.ReviewRepo
	Activity       *service.Activity
}

func NewAccommodationHandler(a *repository.AccommodationRepo, r *repository.ReviewRepo, act *service.Activity) *AccommodationHandler {
	return &AccommodationHandler{Accommodations: a, Reviews: r, Activity: act}
}

type createAccommodationReq struct {
	Name             string           `json:"name" validate:"required,max=200"`
	Type             string           `json:"type" validate:"required,max=50"`
	Description      *string          `json:"description"`
	StarRating       int              `json:"star_rating" validate:"omitempty,min=1,max=5"`
	PriceRange       model.PriceTier  `json:"price_range"`
	Amenities        model.AmenitySet `json:"amenities"`
	Location         *string          `json:"location"`
	ProximityToGates *string          `json:"proximity_to_gates"`
	ContactInfo      *string          `json:"contact_info"`
	WebsiteURL       *string          `json:"website_url" validate:"omitempty,url"`
	BookingInfo      *string          `json:"booking_info"`
	IsWomenOwned     bool             `json:"is_women_owned"`
	IsEcoFriendly    bool             `json:"is_eco_friendly"`
	IsFamilyFriendly bool             `json:"is_family_friendly"`
}

type reviewReq struct {
	GuestName *string `json:"guest_name" validate:"omitempty,max=100"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment" validate:"omitempty,max=2000"`
}

type imageReq struct {
	ImageURL  string  `json:"image_url" validate:"required,url"`
	Caption   *string `json:"caption" validate:"omitempty,max=200"`
	IsPrimary bool    `json:"is_primary"`
}

// List: GET /api/accommodations?type&minRating&maxPrice&amenities&gateProximity&featured
func (h *AccommodationHandler) List(c echo.Context) error {
	f, err := parseAccommodationFilter(c)
	if err != nil {
		return respondError(c, err, "failed to fetch accommodations")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Accommodations.Search(ctx, f)
	if err != nil {
		return respondError(c, err, "failed to fetch accommodations")
	}
	return c.JSON(http.StatusOK, list)
}

func parseAccommodationFilter(c echo.Context) (repository.AccommodationFilter, error) {
	f := repository.AccommodationFilter{
		Type:          strings.TrimSpace(c.QueryParam("type")),
		Amenities:     splitCSV(c.QueryParam("amenities")),
		GateProximity: strings.TrimSpace(c.QueryParam("gateProximity")),
	}
	if raw := strings.TrimSpace(c.QueryParam("minRating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, service.ValidationError("minRating must be a number")
		}
		f.MinRating = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		// an unknown tier still sets the filter so that nothing matches
		tier, _ := model.ParsePriceTier(raw)
		f.MaxPrice = &tier
	}
	switch strings.ToLower(strings.TrimSpace(c.QueryParam("featured"))) {
	case "true", "1", "yes":
		f.Featured = true
	}
	return f, nil
}

// NearGate: GET /api/accommodations/gate/:gateName
func (h *AccommodationHandler) NearGate(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Accommodations.ListNearGate(ctx, c.Param("gateName"))
	if err != nil {
		return respondError(c, err, "failed to fetch accommodations")
	}
	return c.JSON(http.StatusOK, list)
}

// Get: GET /api/accommodations/:id
func (h *AccommodationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid accommodation id")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	d, err := h.Accommodations.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to fetch accommodation")
	}
	return c.JSON(http.StatusOK, d)
}

// Create: POST /api/accommodations
func (h *AccommodationHandler) Create(c echo.Context) error {
	var req createAccommodationReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "failed to create accommodation")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.TrimSpace(req.Type)
	if req.Name == "" || req.Type == "" {
		return badRequest(c, "name and type are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	a, err := h.Accommodations.Create(ctx, model.Accommodation{
		Name:             req.Name,
		Type:             req.Type,
		Description:      trimPtr(req.Description),
		StarRating:       req.StarRating,
		PriceRange:       req.PriceRange,
		Amenities:        req.Amenities,
		Location:         trimPtr(req.Location),
		ProximityToGates: trimPtr(req.ProximityToGates),
		ContactInfo:      trimPtr(req.ContactInfo),
		WebsiteURL:       trimPtr(req.WebsiteURL),
		BookingInfo:      trimPtr(req.BookingInfo),
		IsWomenOwned:     req.IsWomenOwned,
		IsEcoFriendly:    req.IsEcoFriendly,
		IsFamilyFriendly: req.IsFamilyFriendly,
	})
	if err != nil {
		return respondError(c, err, "failed to create accommodation")
	}
	h.Activity.Emit(queue.KindAccommodationCreated, a.ID, nil, fmt.Sprintf("%s (%s)", a.Name, a.Type))
	return c.JSON(http.StatusCreated, a)
}

// AddReview: POST /api/accommodations/:id/reviews
func (h *AccommodationHandler) AddReview(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid accommodation id")
	}
	var req reviewReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "failed to add review")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return badRequest(c, "valid rating (1-5) is required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	rv := &model.Review{
		AccommodationID: id,
		GuestName:       trimPtr(req.GuestName),
		Rating:          req.Rating,
		Comment:         trimPtr(req.Comment),
	}
	sum, err := h.Reviews.Add(ctx, rv)
	if err != nil {
		return respondError(c, err, "failed to add review")
	}
	metrics.ReviewsAdded.Inc()
	h.Activity.Emit(queue.KindReviewAdded, id, nil, fmt.Sprintf("rated %d/5", rv.Rating))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "review added successfully",
		"review_id":    rv.ID,
		"guest_rating": sum.GuestRating,
		"review_count": sum.ReviewCount,
	})
}

// AddImage: POST /api/accommodations/:id/images (admin)
func (h *AccommodationHandler) AddImage(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid accommodation id")
	}
	var req imageReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "failed to add image")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	img, err := h.Accommodations.AddImage(ctx, model.Image{
		AccommodationID: id,
		ImageURL:        strings.TrimSpace(req.ImageURL),
		Caption:         trimPtr(req.Caption),
		IsPrimary:       req.IsPrimary,
	})
	if err != nil {
		return respondError(c, err, "failed to add image")
	}
	return c.JSON(http.StatusCreated, img)
}
