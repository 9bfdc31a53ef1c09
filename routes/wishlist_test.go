package routes

import (
	"fmt"
	"net/http"
	"testing"

	"beyondborders-server/models"
	"beyondborders-server/storage"
)

func TestToggleWishlistAddsThenRemoves(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "wisher@example.com")
	dest := seedDestination(t, "Bali", 500, true)
	token := signTestToken(user.ID)
	path := fmt.Sprintf("/api/wishlist/toggle/%d", dest.ID)

	resp := doJSON(t, app, http.MethodPost, path, token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["action"] != "added" || body["inWishlist"] != true {
		t.Errorf("expected added/true, got %v/%v", body["action"], body["inWishlist"])
	}

	var count int64
	storage.DB.Model(&models.Wishlist{}).Where("user_id = ? AND destination_id = ?", user.ID, dest.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one wishlist row, found %d", count)
	}

	// Second toggle returns to the original state
	resp2 := doJSON(t, app, http.MethodPost, path, token, "")
	body2 := decodeBody(t, resp2)
	if body2["action"] != "removed" || body2["inWishlist"] != false {
		t.Errorf("expected removed/false, got %v/%v", body2["action"], body2["inWishlist"])
	}

	storage.DB.Model(&models.Wishlist{}).Where("user_id = ? AND destination_id = ?", user.ID, dest.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty wishlist after double toggle, found %d rows", count)
	}
}

func TestToggleWishlistUnknownDestination(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "wisher@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/wishlist/toggle/31337", signTestToken(user.ID), "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestWishlistUniquePerPair(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "wisher@example.com")
	dest := seedDestination(t, "Bali", 500, true)

	entry := models.Wishlist{UserID: user.ID, DestinationID: dest.ID}
	if err := storage.DB.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed wishlist entry: %v", err)
	}

	duplicate := models.Wishlist{UserID: user.ID, DestinationID: dest.ID}
	if err := storage.DB.Create(&duplicate).Error; err == nil {
		t.Fatal("expected the unique index to reject a duplicate pair")
	}

	// The toggle sees the surviving row and removes it
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/wishlist/toggle/%d", dest.ID), signTestToken(user.ID), "")
	if action := decodeBody(t, resp)["action"]; action != "removed" {
		t.Errorf("expected removed, got %v", action)
	}
}

func TestListWishlist(t *testing.T) {
	app := buildTestApp(t)
	user := seedUser(t, "wisher@example.com")
	token := signTestToken(user.ID)

	for i := 0; i < 3; i++ {
		dest := seedDestination(t, fmt.Sprintf("Place %d", i), 100*i, false)
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/wishlist/toggle/%d", dest.ID), token, "")
		if resp.Code != http.StatusOK {
			t.Fatalf("setup toggle failed: %d", resp.Code)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/wishlist", token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := decodeBody(t, resp)

	data := body["data"].([]interface{})
	if len(data) != 3 {
		t.Errorf("expected 3 wishlist entries, got %d", len(data))
	}
	meta := body["meta"].(map[string]interface{})
	if perPage := meta["per_page"].(float64); perPage != 12 {
		t.Errorf("expected page size 12, got %v", perPage)
	}
}
