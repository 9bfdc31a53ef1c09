package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"beyondborders-server/models"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory store with the unique indexes the
// workflows rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Destination{},
		&models.Booking{},
		&models.Review{},
		&models.Wishlist{},
		&models.BlogPost{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// buildTestApp mounts the API routes against a fresh test store.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()

	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	storage.DB = newTestDB(t)

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	destinations := app.Party("/api/destinations")
	{
		destinations.Get("/", ListDestinations)
		destinations.Get("/search", SearchDestinations)
		destinations.Get("/{id:uint}", GetDestination)
	}

	bookings := app.Party("/api/bookings")
	{
		bookings.Post("/destination/{destinationId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, CreateBooking)
		bookings.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, GetBooking)
		bookings.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, ListMyBookings)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Get("/destination/{destinationId:uint}", ListDestinationReviews)
		reviews.Post("/destination/{destinationId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, UpsertReview)
	}

	wishlist := app.Party("/api/wishlist")
	{
		wishlist.Post("/toggle/{destinationId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, ToggleWishlist)
		wishlist.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, ListWishlist)
	}

	blog := app.Party("/api/blog")
	{
		blog.Get("/", ListBlogPosts)
		blog.Get("/{slug}", GetBlogPost)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func signTestToken(id uint) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, _ := signer.Sign(utils.AccessToken{ID: id, Role: "user"})
	return string(token)
}

func doJSON(t *testing.T, app *iris.Application, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
	return out
}

func seedUser(t *testing.T, email string) models.User {
	t.Helper()

	user := models.User{FirstName: "Test", LastName: "User", Email: email, Password: "x"}
	if err := storage.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedDestination(t *testing.T, name string, price int, offer bool) models.Destination {
	t.Helper()

	dest := models.Destination{Name: name, Description: name + " description", Price: price, Offer: offer}
	if err := storage.DB.Create(&dest).Error; err != nil {
		t.Fatalf("failed to seed destination: %v", err)
	}
	return dest
}
