package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"luxury-stay-backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Guest{}))
	return db
}

// protectedRouter echoes the resolved principal so tests can assert on
// what Protect stored.
func protectedRouter(db *gorm.DB, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := gin.HandlersChain{Protect(db)}
	if len(roles) > 0 {
		handlers = append(handlers, Authorize(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": p.Email, "role": p.Role, "name": p.DisplayName})
	})
	r.GET("/secure", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtect_ResolvesStaffPrincipal(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Name: "Alex Admin", Email: "alex@hotel.test", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := IssueToken(user.ID, user.Role)
	require.NoError(t, err)

	w := doGet(protectedRouter(db), token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alex@hotel.test")
	require.Contains(t, w.Body.String(), models.RoleAdmin)
}

func TestProtect_ResolvesGuestPrincipal(t *testing.T) {
	db := openTestDB(t)
	guest := models.Guest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	require.NoError(t, db.Create(&guest).Error)

	token, err := IssueToken(guest.ID, models.RoleGuest)
	require.NoError(t, err)

	w := doGet(protectedRouter(db), token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "jane@example.com")
	require.Contains(t, w.Body.String(), "Jane Doe")
}

func TestProtect_RejectsMissingOrBadToken(t *testing.T) {
	db := openTestDB(t)
	r := protectedRouter(db)

	w := doGet(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "no token")

	w = doGet(r, "garbage.token.here")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "token failed")
}

func TestProtect_RejectsUnknownAccount(t *testing.T) {
	db := openTestDB(t)

	token, err := IssueToken(999, models.RoleAdmin)
	require.NoError(t, err)

	w := doGet(protectedRouter(db), token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtect_RejectsInactiveStaff(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Name: "Gone", Email: "gone@hotel.test", Role: models.RoleManager, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&user).Update("is_active", false).Error)

	token, err := IssueToken(user.ID, user.Role)
	require.NoError(t, err)

	w := doGet(protectedRouter(db), token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "user inactive")
}

func TestAuthorize_RoleGate(t *testing.T) {
	db := openTestDB(t)
	admin := models.User{Name: "Alex", Email: "alex@hotel.test", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)
	guest := models.Guest{FirstName: "Jane", Email: "jane@example.com"}
	require.NoError(t, db.Create(&guest).Error)

	r := protectedRouter(db, models.RoleAdmin, models.RoleManager)

	adminToken, err := IssueToken(admin.ID, admin.Role)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doGet(r, adminToken).Code)

	guestToken, err := IssueToken(guest.ID, models.RoleGuest)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, doGet(r, guestToken).Code)
}
