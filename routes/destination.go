package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"beyondborders-server/models"
	"beyondborders-server/services"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListDestinations is the general listing endpoint: filter, rank, paginate.
func ListDestinations(ctx iris.Context) {
	filters := services.SearchFilters{
		Query:     ctx.URLParam("query"),
		Location:  ctx.URLParam("location"),
		MinPrice:  ctx.URLParam("min_price"),
		MaxPrice:  ctx.URLParam("max_price"),
		MinRating: ctx.URLParamIntDefault("min_rating", 0),
		OfferOnly: ctx.URLParam("offer_only") == "true",
		Page:      ctx.URLParamIntDefault("page", 1),
	}

	result, err := services.SearchDestinations(storage.DB, filters)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"destinations": result.Destinations,
		"meta": iris.Map{
			"page":        result.Page,
			"per_page":    services.DestinationsPerPage,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
		// echo of the search form state for the rendering collaborator
		"filters": filters,
	})
}

// SearchDestinations is the legacy search endpoint. It keeps the older
// parameter names (destination, budget, offer_only, travel_date) and returns
// the unpaginated list with a total count; travel_date is display-only.
func SearchDestinations(ctx iris.Context) {
	filters := services.LegacySearchFilters{
		Destination: ctx.URLParam("destination"),
		Budget:      ctx.URLParam("budget"),
		OfferOnly:   ctx.URLParam("offer_only") == "true",
		TravelDate:  ctx.URLParam("travel_date"),
	}

	destinations, total, err := services.LegacySearch(storage.DB, filters)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"destinations": destinations,
		"totalResults": total,
		"query":        filters.Destination,
		"budget":       filters.Budget,
		"offerOnly":    filters.OfferOnly,
		"travelDate":   filters.TravelDate,
	})
}

// ListOfferedDestinations backs the home page: offers only, alphabetical.
func ListOfferedDestinations(ctx iris.Context) {
	destinations, err := services.OfferedDestinations(storage.DB)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"destinations": destinations})
}

// GetDestination returns the destination with its latest 10 reviews and the
// rating summary. Signed-in callers additionally get their own review and
// whether the destination sits in their wishlist.
func GetDestination(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var destination models.Destination
	if err := storage.DB.First(&destination, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("destination_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	response := iris.Map{
		"destination":   &destination,
		"imageURL":      storage.MediaURL(destination.Image),
		"reviews":       reviews,
		"averageRating": services.AverageRating(storage.DB, id),
		"reviewCount":   services.ReviewCount(storage.DB, id),
		"inWishlist":    false,
	}

	if userID := utils.OptionalUserID(ctx); userID != 0 {
		var ownReview models.Review
		if err := storage.DB.Where("destination_id = ? AND user_id = ?", id, userID).
			First(&ownReview).Error; err == nil {
			response["ownReview"] = &ownReview
		}

		var wishlistCount int64
		storage.DB.Model(&models.Wishlist{}).
			Where("destination_id = ? AND user_id = ?", id, userID).
			Count(&wishlistCount)
		response["inWishlist"] = wishlistCount > 0
	}

	ctx.JSON(response)
}

type DestinationInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       int      `json:"price" validate:"min=0"`
	Offer       bool     `json:"offer"`
	Location    string   `json:"location" validate:"max=100"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Currency    string   `json:"currency" validate:"omitempty,len=3"`
	Image       string   `json:"image"`   // base64 payload, uploaded to media storage
	Gallery     []string `json:"gallery"` // base64 payloads
}

// CreateDestination is part of the role-guarded management surface that
// replaces the retired admin scaffolding.
func CreateDestination(ctx iris.Context) {
	var input DestinationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	destination := models.Destination{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Offer:       input.Offer,
		Location:    input.Location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}
	if input.Currency != "" {
		destination.Currency = strings.ToUpper(input.Currency)
	}

	if input.Image != "" {
		destination.Image = storage.UploadBase64Image(input.Image, fmt.Sprintf("destination_%s", utils.GenerateShortToken(4)))
	}
	if len(input.Gallery) > 0 {
		refs := make([]string, 0, len(input.Gallery))
		for _, img := range input.Gallery {
			if ref := storage.UploadBase64Image(img, fmt.Sprintf("destination_%s", utils.GenerateShortToken(4))); ref != "" {
				refs = append(refs, ref)
			}
		}
		galleryJSON, _ := json.Marshal(refs)
		destination.Gallery = datatypes.JSON(galleryJSON)
	}

	if err := storage.DB.Create(&destination).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&destination)
}

type DestinationUpdateInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description"`
	Price       *int     `json:"price" validate:"omitempty,min=0"`
	Offer       *bool    `json:"offer"`
	Location    *string  `json:"location" validate:"omitempty,max=100"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Currency    *string  `json:"currency" validate:"omitempty,len=3"`
	Image       *string  `json:"image"`
}

func UpdateDestination(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var destination models.Destination
	if err := storage.DB.First(&destination, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input DestinationUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		destination.Name = *input.Name
	}
	if input.Description != nil {
		destination.Description = *input.Description
	}
	if input.Price != nil {
		destination.Price = *input.Price
	}
	if input.Offer != nil {
		destination.Offer = *input.Offer
	}
	if input.Location != nil {
		destination.Location = *input.Location
	}
	if input.Latitude != nil {
		destination.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		destination.Longitude = input.Longitude
	}
	if input.Currency != nil {
		destination.Currency = strings.ToUpper(*input.Currency)
	}
	if input.Image != nil && *input.Image != "" {
		destination.Image = storage.UploadBase64Image(*input.Image, fmt.Sprintf("destination_%s", utils.GenerateShortToken(4)))
	}

	if err := storage.DB.Save(&destination).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&destination)
}

func DeleteDestination(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var destination models.Destination
	if err := storage.DB.First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Delete(&destination).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
