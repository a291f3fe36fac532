package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Key claims di dalam gin.Context
const claimsContextKey = "auth_claims"

// Middleware memverifikasi header "Authorization: Bearer <token>" dan
// menaruh claims di context request. Tanpa token valid, request ditolak 401.
func Middleware(ts *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header tidak ada atau salah format."})
			return
		}

		claims, err := ts.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token tidak valid atau kedaluwarsa."})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole membatasi route untuk role tertentu. Dipasang SETELAH
// Middleware karena membaca claims dari context.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := FromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Tidak terautentikasi."})
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role tidak diizinkan mengakses resource ini."})
	}
}

// FromContext mengambil claims yang sudah ditaruh Middleware.
func FromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// SetClaims menaruh claims di context secara langsung. Dipakai oleh test
// handler untuk mensimulasikan request yang sudah terautentikasi.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsContextKey, claims)
}
