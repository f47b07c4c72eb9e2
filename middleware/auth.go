package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

const principalKey = "principal"

// AuthClaims is the JWT payload: the account id plus the role it was
// issued with. Role "user" means the id points at the Guest store,
// anything else at the staff User store.
type AuthClaims struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(utils.EnvOrDefault("JWT_SECRET", "devsecret"))
}

// IssueToken signs a 7-day HS256 token for an authenticated account.
func IssueToken(id uint, role string) (string, error) {
	claims := AuthClaims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// Protect verifies the bearer token and resolves the caller to a
// Principal exactly once. Handlers downstream never probe the account
// stores again.
func Protect(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		principal, err := resolvePrincipal(db, claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		if !principal.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, user inactive"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// Authorize gates a route group to the given roles. Must run after
// Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: insufficient role"})
	}
}

// PrincipalFrom pulls the resolved caller identity out of the request
// context.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	principal, ok := v.(models.Principal)
	return principal, ok
}

func resolvePrincipal(db *gorm.DB, claims *AuthClaims) (models.Principal, error) {
	if claims.Role == models.RoleGuest {
		var guest models.Guest
		if err := db.First(&guest, claims.ID).Error; err != nil {
			return models.Principal{}, err
		}
		return models.PrincipalFromGuest(&guest), nil
	}

	var user models.User
	if err := db.First(&user, claims.ID).Error; err != nil {
		return models.Principal{}, err
	}
	return models.PrincipalFromUser(&user), nil
}
