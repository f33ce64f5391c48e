package artworks

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"folkify/internal/domain/artists"
	"folkify/internal/domain/artworks"
	"folkify/internal/domain/media"
	"folkify/internal/domain/session"
	"folkify/internal/domain/users"
	"folkify/internal/infra/imagehost"
	"folkify/internal/testsupport"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// router mounts the artwork routes for one actor; a nil session is anonymous.
func router(s *session.Session) *gin.Engine {
	r := testsupport.Engine()
	g := r.Group("/")
	if s != nil {
		g.Use(testsupport.As(*s))
	}
	g.GET("/artworks", ListArtworks)
	g.GET("/artworks/:id", GetArtwork)
	g.POST("/artworks", CreateArtwork)
	g.PUT("/artworks/:id", UpdateArtwork)
	g.DELETE("/artworks/:id", DeleteArtwork)
	g.POST("/artworks/:id/restore", RestoreArtwork)
	g.DELETE("/artworks/:id/permanent", DeleteArtworkPermanently)
	g.POST("/artworks/:id/like", ToggleLike)
	return r
}

func newArtist(t *testing.T, db *gorm.DB, name string) *session.Session {
	t.Helper()
	u := users.User{Email: name + "@example.com", Role: users.RoleArtist, DisplayName: name}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&artists.Artist{ID: u.ID, DisplayName: name, Region: "Bihar"}).Error)
	return &session.Session{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func newBuyer(t *testing.T, db *gorm.DB) *session.Session {
	t.Helper()
	u := users.User{Email: "buyer@example.com", Role: users.RoleBuyer, DisplayName: "Meera"}
	require.NoError(t, db.Create(&u).Error)
	return &session.Session{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func seedArtwork(t *testing.T, db *gorm.DB, artistID, title string, active bool) artworks.Artwork {
	t.Helper()
	a := artworks.Artwork{
		ArtistID: artistID,
		Title:    title,
		ArtForm:  "madhubani",
		IsActive: active,
		Image:    media.ImageRef{URL: "https://img.test/" + title + ".jpg", ProviderID: "artworks/" + title + ".jpg"},
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func createBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"art_form":    "madhubani",
		"price":       "4500",
		"is_for_sale": true,
		"tags":        []string{"Fish", " fish ", "Wedding"},
		"image":       map[string]any{"url": "https://img.test/" + title + ".jpg"},
	}
}

func TestCreateArtworkVerifiesArtistOnThird(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	r := router(artist)

	var body map[string]any
	for _, title := range []string{"one", "two", "three"} {
		w, out := testsupport.JSON(t, r, http.MethodPost, "/artworks", createBody(title))
		require.Equal(t, http.StatusCreated, w.Code, out)
		body = out
	}

	artwork := body["artwork"].(map[string]any)
	assert.Equal(t, "Dulari", artwork["artist_name"])
	assert.Equal(t, "Bihar", artwork["region"])
	assert.Equal(t, "4500.00", artwork["price"])
	assert.Equal(t, true, artwork["is_active"])
	assert.Equal(t, []any{"fish", "wedding"}, artwork["tags"])

	verification := body["verification"].(map[string]any)
	assert.Equal(t, true, verification["is_verified"])
	assert.Equal(t, true, verification["changed"])
	assert.EqualValues(t, 0, verification["remaining"])

	var stored artists.Artist
	require.NoError(t, db.First(&stored, "id = ?", artist.UserID).Error)
	assert.True(t, stored.IsVerified)
	assert.NotNil(t, stored.VerificationDate)
}

func TestCreateArtworkRejectsInvalidInput(t *testing.T) {
	db := testsupport.OpenDB(t)
	r := router(newArtist(t, db, "Dulari"))

	noPrice := createBody("unpriced")
	delete(noPrice, "price")
	w, body := testsupport.JSON(t, r, http.MethodPost, "/artworks", noPrice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	badCurrency := createBody("rupees")
	badCurrency["currency"] = "RUPEES"
	w, body = testsupport.JSON(t, r, http.MethodPost, "/artworks", badCurrency)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "currency must be a 3-letter ISO code", body["error"])

	badPrice := createBody("bad")
	badPrice["price"] = "lots"
	w, body = testsupport.JSON(t, r, http.MethodPost, "/artworks", badPrice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price must be a number", body["error"])

	var count int64
	require.NoError(t, db.Model(&artworks.Artwork{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListArtworksPublicShape(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	seedArtwork(t, db, artist.UserID, "fish", true)
	seedArtwork(t, db, artist.UserID, "peacock", true)
	seedArtwork(t, db, artist.UserID, "hidden", false)

	w, body := testsupport.JSON(t, router(nil), http.MethodGet, "/artworks?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["artworks"], 1)
	assert.Equal(t, true, body["hasMore"])
	cursor := body["cursor"].(string)
	require.NotEmpty(t, cursor)

	w, body = testsupport.JSON(t, router(nil), http.MethodGet, "/artworks?limit=1&cursor="+cursor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["artworks"], 1)
	assert.Equal(t, false, body["hasMore"])
}

func TestListArtworksFailureShape(t *testing.T) {
	testsupport.OpenDB(t)

	w, body := testsupport.JSON(t, router(nil), http.MethodGet, "/artworks?orderField=title", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "orderField must be createdAt or price", body["error"])
	assert.Equal(t, []any{}, body["artworks"])

	w, body = testsupport.JSON(t, router(nil), http.MethodGet, "/artworks?isActive=false", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []any{}, body["artworks"])
}

func TestListInactiveIsScopedToCaller(t *testing.T) {
	db := testsupport.OpenDB(t)
	mine := newArtist(t, db, "Dulari")
	other := newArtist(t, db, "Baua")
	seedArtwork(t, db, mine.UserID, "mine", false)
	seedArtwork(t, db, other.UserID, "theirs", false)

	w, body := testsupport.JSON(t, router(mine), http.MethodGet, "/artworks?isActive=false&artistId="+other.UserID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := body["artworks"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].(map[string]any)["title"])
}

func TestGetArtworkViewsAndVisibility(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	buyer := newBuyer(t, db)
	active := seedArtwork(t, db, artist.UserID, "fish", true)
	hidden := seedArtwork(t, db, artist.UserID, "hidden", false)

	w, body := testsupport.JSON(t, router(buyer), http.MethodGet, "/artworks/"+active.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["artwork"].(map[string]any)["views"])
	assert.Equal(t, false, body["liked"])

	// owner views do not count
	w, body = testsupport.JSON(t, router(artist), http.MethodGet, "/artworks/"+active.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["artwork"].(map[string]any)["views"])
	assert.Equal(t, true, body["owner"])

	w, _ = testsupport.JSON(t, router(buyer), http.MethodGet, "/artworks/"+hidden.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = testsupport.JSON(t, router(artist), http.MethodGet, "/artworks/"+hidden.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateArtworkOwnerOnly(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	other := newArtist(t, db, "Baua")
	a := seedArtwork(t, db, artist.UserID, "fish", true)
	require.NoError(t, artworks.IncrementViews(context.Background(), db, a.ID))

	update := map[string]any{"title": "Fish Pair", "price": "1200.5", "is_for_sale": true}
	w, _ := testsupport.JSON(t, router(other), http.MethodPut, "/artworks/"+a.ID, update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := testsupport.JSON(t, router(artist), http.MethodPut, "/artworks/"+a.ID, update)
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, "1200.50", body["artwork"].(map[string]any)["price"])

	var stored artworks.Artwork
	require.NoError(t, db.First(&stored, "id = ?", a.ID).Error)
	assert.Equal(t, "Fish Pair", stored.Title)
	assert.True(t, stored.IsForSale)
	assert.EqualValues(t, 1, stored.Views, "counters are not rewritten by updates")
}

func TestSoftDeleteRestoreAndVerification(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	r := router(artist)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		w, body := testsupport.JSON(t, r, http.MethodPost, "/artworks", createBody(title))
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, body["artwork"].(map[string]any)["id"].(string))
	}

	w, body := testsupport.JSON(t, r, http.MethodDelete, "/artworks/"+ids[0], nil)
	require.Equal(t, http.StatusOK, w.Code)
	verification := body["verification"].(map[string]any)
	assert.Equal(t, false, verification["is_verified"])
	assert.EqualValues(t, 1, verification["remaining"])

	var stored artworks.Artwork
	require.NoError(t, db.First(&stored, "id = ?", ids[0]).Error)
	assert.False(t, stored.IsActive)

	// deleting twice leaves the state unchanged
	w, _ = testsupport.JSON(t, r, http.MethodDelete, "/artworks/"+ids[0], nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = testsupport.JSON(t, r, http.MethodPost, "/artworks/"+ids[0]+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["verification"].(map[string]any)["is_verified"])
}

func TestDeleteArtworkPermanently(t *testing.T) {
	db := testsupport.OpenDB(t)
	host := imagehost.NewMemory()
	_, err := host.Put(context.Background(), "artworks/fish.jpg", "image/jpeg", []byte("img"))
	require.NoError(t, err)
	prev := imagehost.Default
	imagehost.Default = host
	t.Cleanup(func() { imagehost.Default = prev })

	artist := newArtist(t, db, "Dulari")
	buyer := newBuyer(t, db)
	a := seedArtwork(t, db, artist.UserID, "fish", true)
	_, _, err = artworks.ToggleLike(context.Background(), db, a.ID, buyer.UserID)
	require.NoError(t, err)

	w, _ := testsupport.JSON(t, router(artist), http.MethodDelete, "/artworks/"+a.ID+"/permanent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&artworks.Artwork{}).Where("id = ?", a.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&artworks.Like{}).Where("artwork_id = ?", a.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = host.Get("artworks/fish.jpg")
	assert.Error(t, err)

	w, _ = testsupport.JSON(t, router(artist), http.MethodDelete, "/artworks/"+a.ID+"/permanent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLikeHandler(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	buyer := newBuyer(t, db)
	a := seedArtwork(t, db, artist.UserID, "fish", true)
	r := router(buyer)

	w, body := testsupport.JSON(t, r, http.MethodPost, "/artworks/"+a.ID+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["liked"])
	assert.EqualValues(t, 1, body["likes"])

	w, body = testsupport.JSON(t, r, http.MethodGet, "/artworks/"+a.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["liked"])

	w, body = testsupport.JSON(t, r, http.MethodPost, "/artworks/"+a.ID+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["liked"])
	assert.EqualValues(t, 0, body["likes"])
}

func TestGetArtworkStoreFailureIsNotNotFound(t *testing.T) {
	db := testsupport.OpenDB(t)
	artist := newArtist(t, db, "Dulari")
	a := seedArtwork(t, db, artist.UserID, "fish", true)

	w, body := testsupport.JSON(t, router(nil), http.MethodGet, "/artworks/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Artwork not found", body["error"])

	testsupport.FailQueries(t, db, "artworks", errors.New("connection reset"))
	w, _ = testsupport.JSON(t, router(nil), http.MethodGet, "/artworks/"+a.ID, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
