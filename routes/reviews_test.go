package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"beyondborders-server/models"
	"beyondborders-server/storage"
)

func TestUpsertReviewAddsThenUpdates(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "reviewer@example.com")
	dest := seedDestination(t, "Bali", 500, true)
	token := signTestToken(user.ID)
	path := fmt.Sprintf("/api/reviews/destination/%d", dest.ID)

	resp := doJSON(t, app, http.MethodPost, path, token, `{"rating": 3, "comment": "decent"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if action := decodeBody(t, resp)["action"]; action != "added" {
		t.Errorf("expected action added, got %v", action)
	}

	var first models.Review
	if err := storage.DB.Where("user_id = ? AND destination_id = ?", user.ID, dest.ID).First(&first).Error; err != nil {
		t.Fatalf("expected review row: %v", err)
	}

	// Second call for the same pair overwrites instead of inserting
	time.Sleep(10 * time.Millisecond)
	resp2 := doJSON(t, app, http.MethodPost, path, token, `{"rating": 5, "comment": "changed my mind"}`)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp2.Code, resp2.Body.String())
	}
	if action := decodeBody(t, resp2)["action"]; action != "updated" {
		t.Errorf("expected action updated, got %v", action)
	}

	var count int64
	storage.DB.Model(&models.Review{}).Where("user_id = ? AND destination_id = ?", user.ID, dest.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one review row, found %d", count)
	}

	var updated models.Review
	storage.DB.Where("user_id = ? AND destination_id = ?", user.ID, dest.ID).First(&updated)
	if updated.Rating != 5 || updated.Comment != "changed my mind" {
		t.Errorf("expected overwritten review, got rating=%d comment=%q", updated.Rating, updated.Comment)
	}
	if updated.ID != first.ID {
		t.Errorf("expected the original row to be updated, got new id %d", updated.ID)
	}
	if !updated.UpdatedAt.After(first.UpdatedAt) {
		t.Error("expected updated_at to be refreshed")
	}
}

func TestUpsertReviewRatingValidation(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "reviewer@example.com")
	dest := seedDestination(t, "Bali", 500, true)
	token := signTestToken(user.ID)
	path := fmt.Sprintf("/api/reviews/destination/%d", dest.ID)

	for _, rating := range []int{0, 6, -1} {
		resp := doJSON(t, app, http.MethodPost, path, token, fmt.Sprintf(`{"rating": %d, "comment": "x"}`, rating))
		if resp.Code != http.StatusBadRequest {
			t.Errorf("rating=%d: expected 400, got %d", rating, resp.Code)
		}
	}

	var count int64
	storage.DB.Model(&models.Review{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no review rows after rejected input, found %d", count)
	}
}

func TestUpsertReviewUnknownDestination(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "reviewer@example.com")
	token := signTestToken(user.ID)

	resp := doJSON(t, app, http.MethodPost, "/api/reviews/destination/424242", token, `{"rating": 4, "comment": ""}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDuplicateReviewInsertRecoversAsUpdate(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "reviewer@example.com")
	dest := seedDestination(t, "Bali", 500, true)
	token := signTestToken(user.ID)

	// Simulate the losing side of a concurrent upsert: the row appears
	// between the handler's lookup and its insert. The unique index must
	// reject the duplicate and the store keeps a single row either way.
	review := models.Review{UserID: user.ID, DestinationID: dest.ID, Rating: 2, Comment: "raced"}
	if err := storage.DB.Create(&review).Error; err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}

	duplicate := models.Review{UserID: user.ID, DestinationID: dest.ID, Rating: 4, Comment: "dup"}
	if err := storage.DB.Create(&duplicate).Error; err == nil {
		t.Fatal("expected the unique index to reject a duplicate insert")
	}

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/reviews/destination/%d", dest.ID), token,
		`{"rating": 5, "comment": "final"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	storage.DB.Model(&models.Review{}).Where("user_id = ? AND destination_id = ?", user.ID, dest.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one review row, found %d", count)
	}
}

func TestListDestinationReviews(t *testing.T) {
	app := buildTestApp(t)
	dest := seedDestination(t, "Bali", 500, true)

	for i, rating := range []int{2, 4} {
		user := seedUser(t, fmt.Sprintf("user%d@example.com", i))
		review := models.Review{UserID: user.ID, DestinationID: dest.ID, Rating: rating}
		if err := storage.DB.Create(&review).Error; err != nil {
			t.Fatalf("failed to seed review: %v", err)
		}
	}

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/reviews/destination/%d", dest.ID), "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := decodeBody(t, resp)

	if avg := body["averageRating"].(float64); avg != 3 {
		t.Errorf("expected average 3, got %v", avg)
	}
	if count := body["reviewCount"].(float64); count != 2 {
		t.Errorf("expected count 2, got %v", count)
	}
}
