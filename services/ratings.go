package services

import (
	"beyondborders-server/models"

	"gorm.io/gorm"
)

type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

// AverageRating returns the arithmetic mean of a destination's review
// ratings, or 0 when it has none.
func AverageRating(db *gorm.DB, destinationID uint) float64 {
	var avg *float64
	db.Model(&models.Review{}).
		Where("destination_id = ?", destinationID).
		Select("AVG(rating)").
		Scan(&avg)
	if avg == nil {
		return 0
	}
	return *avg
}

func ReviewCount(db *gorm.DB, destinationID uint) int64 {
	var count int64
	db.Model(&models.Review{}).
		Where("destination_id = ?", destinationID).
		Count(&count)
	return count
}

// RatingSummaries computes average rating and review count for a batch of
// destinations in one grouped query. Destinations without reviews are absent
// from the result; callers treat that as average 0, count 0.
func RatingSummaries(db *gorm.DB, destinationIDs []uint) map[uint]RatingSummary {
	summaries := make(map[uint]RatingSummary, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return summaries
	}

	var rows []struct {
		DestinationID uint
		Average       float64
		Count         int64
	}
	db.Model(&models.Review{}).
		Where("destination_id IN ?", destinationIDs).
		Select("destination_id, AVG(rating) AS average, COUNT(*) AS count").
		Group("destination_id").
		Scan(&rows)

	for _, row := range rows {
		summaries[row.DestinationID] = RatingSummary{
			AverageRating: row.Average,
			ReviewCount:   row.Count,
		}
	}
	return summaries
}
