package middlewares

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticate parses an Authorization bearer token when one is present and
// stores its claims in the context. It never rejects the request; handlers
// that need an identity use RequireAuth.
func Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			log.Println("Token parse error:", err)
			ctx.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			ctx.Set("user", claims)
		}
		ctx.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get("user"); !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		ctx.Next()
	}
}

// RequireSeller gates endpoints that manage a store or its products.
func RequireSeller() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		claims := userClaims.(jwt.MapClaims)
		role, ok := claims["role"].(string)
		if !ok || (role != "seller" && role != "admin") {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Seller access required"})
			return
		}

		ctx.Next()
	}
}
