package utils

import (
	"os"
	"strings"

	"github.com/kataras/iris/v12"
	irisJWT "github.com/kataras/iris/v12/middleware/jwt"
	"github.com/kataras/jwt"
)

// UserIDFromTokenMiddleware extracts the caller's identity from the verified
// access token and stores it in the request values. Workflows read it from
// there instead of any global state.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := irisJWT.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware guards the destination and blog management surface.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := irisJWT.Get(ctx).(*AccessToken)
	if claims.Role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// GetUserID returns the authenticated caller's id, or 0 when the request
// carries no identity.
func GetUserID(ctx iris.Context) uint {
	if v := ctx.Values().Get("userID"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// OptionalUserID verifies a Bearer token if one is present, without failing
// the request when it is absent or invalid. Used by public endpoints that
// enrich their response for signed-in callers (destination detail).
func OptionalUserID(ctx iris.Context) uint {
	if id := GetUserID(ctx); id != 0 {
		return id
	}

	raw := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(raw, "Bearer ") {
		return 0
	}

	verifiedToken, err := jwt.Verify(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")), []byte(strings.TrimPrefix(raw, "Bearer ")))
	if err != nil {
		return 0
	}

	var claims AccessToken
	if err := verifiedToken.Claims(&claims); err != nil {
		return 0
	}
	return claims.ID
}
