package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"talenthub-backend/config"
	"talenthub-backend/services"
)

// revoked tokens live in the injected TTL store, set from main
var tokenStore services.KVStore

// SetTokenStore injects the revocation store used by the auth middleware.
func SetTokenStore(store services.KVStore) {
	tokenStore = store
}

func parseToken(tokenString string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.GetConfig().JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func setPrincipal(c *gin.Context, claims jwt.MapClaims) bool {
	jti, _ := claims["jti"].(string)
	if jti != "" && tokenStore != nil {
		if _, revoked := tokenStore.Get("revoked:" + jti); revoked {
			return false
		}
	}
	c.Set("user_id", uint(claims["user_id"].(float64)))
	c.Set("username", claims["username"].(string))
	c.Set("role", claims["role"].(string))
	c.Set("jti", jti)
	return true
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing authorization token",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "malformed authorization header",
			})
			c.Abort()
			return
		}

		claims, ok := parseToken(parts[1])
		if !ok || !setPrincipal(c, claims) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "token invalid, expired or revoked",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth sets the principal when a valid token is present but lets
// anonymous requests through. Used on the file serving path, where public
// documents are readable without a session.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, ok := parseToken(parts[1]); ok {
					setPrincipal(c, claims)
				}
			}
		}
		c.Next()
	}
}

// RoleRequired gates a route group to the given roles.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if exists {
			for _, r := range roles {
				if role == r {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "insufficient permissions",
		})
		c.Abort()
	}
}

// Principal builds the access-control principal from the gin context.
// Anonymous requests yield the zero principal.
func Principal(c *gin.Context) services.Principal {
	return services.Principal{
		ID:   c.GetUint("user_id"),
		Role: c.GetString("role"),
	}
}
