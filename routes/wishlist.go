package routes

import (
	"errors"

	"beyondborders-server/models"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// ToggleWishlist flips the (user, destination) membership: absent pairs are
// added, present pairs removed. A duplicate-key failure on the insert means
// another request added the pair first, so this call removes it — the store
// constraint stays the single source of truth for uniqueness.
func ToggleWishlist(ctx iris.Context) {
	userID := utils.GetUserID(ctx)
	if userID == 0 {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Sign in to manage your wishlist.", ctx)
		return
	}

	destinationID := ctx.Params().GetUintDefault("destinationId", 0)
	var destination models.Destination
	if err := storage.DB.First(&destination, destinationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var existing models.Wishlist
	err := storage.DB.Where("destination_id = ? AND user_id = ?", destinationID, userID).
		First(&existing).Error
	if err == nil {
		removeWishlistEntry(ctx, &existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	entry := models.Wishlist{
		UserID:        userID,
		DestinationID: destinationID,
	}

	createErr := storage.DB.Create(&entry).Error
	if createErr == nil {
		ctx.JSON(iris.Map{"action": "added", "inWishlist": true})
		return
	}

	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		if err := storage.DB.Where("destination_id = ? AND user_id = ?", destinationID, userID).
			First(&existing).Error; err == nil {
			removeWishlistEntry(ctx, &existing)
			return
		}
	}

	utils.CreateInternalServerError(ctx)
}

func removeWishlistEntry(ctx iris.Context, entry *models.Wishlist) {
	if err := storage.DB.Delete(entry).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"action": "removed", "inWishlist": false})
}

// ListWishlist returns the caller's wishlist, newest additions first,
// 12 per page.
func ListWishlist(ctx iris.Context) {
	userID := utils.GetUserID(ctx)

	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := 12

	var total int64
	storage.DB.Model(&models.Wishlist{}).Where("user_id = ?", userID).Count(&total)

	var entries []models.Wishlist
	if err := storage.DB.Preload("Destination").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&entries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, entries, page, perPage, total)
}
