package routes

import (
	"errors"

	"beyondborders-server/models"
	"beyondborders-server/services"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type UpsertReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// UpsertReview creates the caller's review for a destination or overwrites
// the existing one. The (user, destination) unique index is the authority:
// a racing duplicate insert is converted into the update path instead of
// surfacing as an error.
func UpsertReview(ctx iris.Context) {
	userID := utils.GetUserID(ctx)
	if userID == 0 {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Sign in to leave a review.", ctx)
		return
	}

	destinationID := ctx.Params().GetUintDefault("destinationId", 0)
	var destination models.Destination
	if err := storage.DB.First(&destination, destinationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpsertReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Review
	err := storage.DB.Where("destination_id = ? AND user_id = ?", destinationID, userID).
		First(&existing).Error
	if err == nil {
		updateReview(ctx, &existing, input)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		UserID:        userID,
		DestinationID: destinationID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}

	createErr := storage.DB.Create(&review).Error
	if createErr == nil {
		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(iris.Map{"action": "added", "review": &review})
		return
	}

	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent insert for the same pair;
		// retry as an update of that row.
		if err := storage.DB.Where("destination_id = ? AND user_id = ?", destinationID, userID).
			First(&existing).Error; err == nil {
			updateReview(ctx, &existing, input)
			return
		}
	}

	utils.CreateInternalServerError(ctx)
}

func updateReview(ctx iris.Context, review *models.Review, input UpsertReviewInput) {
	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := storage.DB.Save(review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"action": "updated", "review": review})
}

// ListDestinationReviews returns all reviews for a destination, newest
// first, along with the rating summary.
func ListDestinationReviews(ctx iris.Context) {
	destinationID := ctx.Params().GetUintDefault("destinationId", 0)
	if destinationID == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"reviews":       reviews,
		"averageRating": services.AverageRating(storage.DB, destinationID),
		"reviewCount":   services.ReviewCount(storage.DB, destinationID),
	})
}
