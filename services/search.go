package services

import (
	"strconv"
	"strings"

	"beyondborders-server/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const DestinationsPerPage = 12

// SearchFilters carries the raw query parameters of the destination listing.
// Price bounds stay strings: values that fail to parse as integers skip the
// filter instead of rejecting the request.
type SearchFilters struct {
	Query     string `json:"query"`
	Location  string `json:"location"`
	MinPrice  string `json:"minPrice"`
	MaxPrice  string `json:"maxPrice"`
	MinRating int    `json:"minRating"` // 1..5, 0 means absent
	OfferOnly bool   `json:"offerOnly"`
	Page      int    `json:"page"`
}

type SearchResult struct {
	Destinations []models.Destination
	Total        int64
	Page         int
	TotalPages   int
}

// SearchDestinations applies the listing filters, orders offers first then
// name then id, and slices out the requested page of 12.
func SearchDestinations(db *gorm.DB, filters SearchFilters) (*SearchResult, error) {
	q := applyCommonFilters(db.Model(&models.Destination{}), filters.Query, filters.Location, filters.OfferOnly)

	if minPrice, err := strconv.Atoi(strings.TrimSpace(filters.MinPrice)); err == nil {
		q = q.Where("price >= ?", minPrice)
	}
	if maxPrice, err := strconv.Atoi(strings.TrimSpace(filters.MaxPrice)); err == nil {
		q = q.Where("price <= ?", maxPrice)
	}

	var destinations []models.Destination
	if err := q.Find(&destinations).Error; err != nil {
		return nil, err
	}

	if filters.MinRating >= 1 && filters.MinRating <= 5 {
		destinations = filterByMinRating(db, destinations, filters.MinRating)
	}

	sortDestinations(destinations)

	total := int64(len(destinations))
	page := filters.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + DestinationsPerPage - 1) / DestinationsPerPage)

	start := (page - 1) * DestinationsPerPage
	if start > len(destinations) {
		start = len(destinations)
	}
	end := start + DestinationsPerPage
	if end > len(destinations) {
		end = len(destinations)
	}

	return &SearchResult{
		Destinations: destinations[start:end],
		Total:        total,
		Page:         page,
		TotalPages:   totalPages,
	}, nil
}

// LegacySearchFilters is the older search form's parameter set: free text,
// a single budget ceiling and the offer flag. The travel date is carried for
// display only and never filters.
type LegacySearchFilters struct {
	Destination string
	Budget      string
	OfferOnly   bool
	TravelDate  string
}

// LegacySearch returns the unpaginated filtered list plus its total count.
func LegacySearch(db *gorm.DB, filters LegacySearchFilters) ([]models.Destination, int64, error) {
	q := applyCommonFilters(db.Model(&models.Destination{}), filters.Destination, "", filters.OfferOnly)

	if budget, err := strconv.Atoi(strings.TrimSpace(filters.Budget)); err == nil {
		q = q.Where("price <= ?", budget)
	}

	var destinations []models.Destination
	if err := q.Find(&destinations).Error; err != nil {
		return nil, 0, err
	}

	sortDestinations(destinations)
	return destinations, int64(len(destinations)), nil
}

// OfferedDestinations is the home listing: offer=true ordered by name.
func OfferedDestinations(db *gorm.DB) ([]models.Destination, error) {
	var destinations []models.Destination
	err := db.Where("offer = ?", true).Order("name ASC, id ASC").Find(&destinations).Error
	return destinations, err
}

func applyCommonFilters(q *gorm.DB, query, location string, offerOnly bool) *gorm.DB {
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if location = strings.TrimSpace(location); location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if offerOnly {
		q = q.Where("offer = ?", true)
	}
	return q
}

func filterByMinRating(db *gorm.DB, destinations []models.Destination, minRating int) []models.Destination {
	ids := make([]uint, 0, len(destinations))
	for _, d := range destinations {
		ids = append(ids, d.ID)
	}
	summaries := RatingSummaries(db, ids)

	kept := destinations[:0]
	for _, d := range destinations {
		if summaries[d.ID].AverageRating >= float64(minRating) {
			kept = append(kept, d)
		}
	}
	return kept
}

// sortDestinations orders offers first, then name ascending; id breaks name
// ties so the order is a deterministic total order.
func sortDestinations(destinations []models.Destination) {
	slices.SortStableFunc(destinations, func(a, b models.Destination) int {
		if a.Offer != b.Offer {
			if a.Offer {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
