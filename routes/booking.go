package routes

import (
	"time"

	"beyondborders-server/models"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

type CreateBookingInput struct {
	TravelDate        string `json:"travelDate" validate:"required"`
	NumberOfTravelers int    `json:"numberOfTravelers" validate:"required,min=1,max=10"`
}

// CreateBooking records a pending booking for the authenticated caller.
// Validation happens before any write: an invalid destination, date or
// traveler count leaves no row behind.
func CreateBooking(ctx iris.Context) {
	userID := utils.GetUserID(ctx)
	if userID == 0 {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Sign in to book a trip.", ctx)
		return
	}

	destinationID := ctx.Params().GetUintDefault("destinationId", 0)
	var destination models.Destination
	if err := storage.DB.First(&destination, destinationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Past dates are accepted; only the format is validated.
	travelDate, err := time.Parse("2006-01-02", input.TravelDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "travelDate must be a valid date (YYYY-MM-DD).", ctx)
		return
	}

	booking := models.Booking{
		UserID:            userID,
		DestinationID:     destination.ID,
		Reference:         uuid.NewString(),
		TravelDate:        travelDate,
		NumberOfTravelers: input.NumberOfTravelers,
		Status:            models.BookingPending,
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"bookingID": booking.ID,
		"reference": booking.Reference,
		"status":    booking.Status,
	})
}

// GetBooking is the confirmation view; the booking must belong to the
// caller, anything else reads as not found.
func GetBooking(ctx iris.Context) {
	userID := utils.GetUserID(ctx)
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.Preload("Destination").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(&booking)
}

// ListMyBookings returns the caller's bookings, newest first, 10 per page.
func ListMyBookings(ctx iris.Context) {
	userID := utils.GetUserID(ctx)

	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := 10

	var total int64
	storage.DB.Model(&models.Booking{}).Where("user_id = ?", userID).Count(&total)

	var bookings []models.Booking
	if err := storage.DB.Preload("Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}
