package main

import (
	"fmt"
	"log"
	"os"

	"beyondborders-server/routes"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	users := app.Party("/api/users")
	{
		users.Post("/register", routes.Register)
		users.Post("/login", routes.Login)
	}

	destinations := app.Party("/api/destinations")
	{
		destinations.Get("/", routes.ListDestinations)
		destinations.Get("/search", routes.SearchDestinations)
		destinations.Get("/offers", routes.ListOfferedDestinations)
		destinations.Get("/{id:uint}", routes.GetDestination)

		destinations.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateDestination)
		destinations.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateDestination)
		destinations.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteDestination)
	}

	bookings := app.Party("/api/bookings")
	{
		bookings.Post("/destination/{destinationId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		bookings.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetBooking)
		bookings.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListMyBookings)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Get("/destination/{destinationId:uint}", routes.ListDestinationReviews)
		reviews.Post("/destination/{destinationId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpsertReview)
	}

	wishlist := app.Party("/api/wishlist")
	{
		wishlist.Post("/toggle/{destinationId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ToggleWishlist)
		wishlist.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListWishlist)
	}

	blog := app.Party("/api/blog")
	{
		blog.Get("/", routes.ListBlogPosts)
		blog.Get("/{slug}", routes.GetBlogPost)

		blog.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateBlogPost)
		blog.Patch("/{slug}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateBlogPost)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
