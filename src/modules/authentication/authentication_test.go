package authentication_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/madina-zvezda/yatube/src/core/cache"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	"github.com/madina-zvezda/yatube/src/core/middleware"
	"github.com/madina-zvezda/yatube/src/core/models"
	"github.com/madina-zvezda/yatube/src/core/router"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.SetupEnv()
	viper.Set("JWT_SECRET", "test-secret")
	viper.Set("MEDIA_ROOT", t.TempDir())

	db, err := database.OpenSQLite("file::memory:", &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	return router.NewApp(cache.NewPageCache(time.Minute))
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return string(b)
}

func signupForm(username string) url.Values {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", username+"@example.com")
	form.Set("password1", "very-secret-1")
	form.Set("password2", "very-secret-1")
	return form
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func TestSignupCreatesUserAndSetsSession(t *testing.T) {
	app := setupApp(t)

	form := signupForm("leo")
	form.Set("first_name", "Leo")
	form.Set("last_name", "Tolstoy")
	resp := postForm(t, app, "/auth/signup", form)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var user models.User
	require.NoError(t, database.DB.First(&user, "username = ?", "leo").Error)
	assert.Equal(t, "leo@example.com", user.Email)
	assert.Equal(t, "Leo Tolstoy", user.FullName())
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$"), "password must be stored as a bcrypt hash")
	assert.NotEqual(t, "very-secret-1", user.PasswordHash)
}

func TestSignupPasswordMismatch(t *testing.T) {
	app := setupApp(t)

	form := signupForm("leo")
	form.Set("password2", "something-else")
	resp := postForm(t, app, "/auth/signup", form)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "The two password fields didn&#39;t match.")

	var n int64
	require.NoError(t, database.DB.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestSignupRejectsInvalidUsername(t *testing.T) {
	app := setupApp(t)

	form := signupForm("leo")
	form.Set("username", "leo tolstoy")
	resp := postForm(t, app, "/auth/signup", form)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Enter a valid username.")
}

func TestSignupDuplicateUsername(t *testing.T) {
	app := setupApp(t)

	resp := postForm(t, app, "/auth/signup", signupForm("leo"))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	form := signupForm("leo")
	form.Set("email", "other@example.com")
	resp = postForm(t, app, "/auth/signup", form)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "already exists")

	var n int64
	require.NoError(t, database.DB.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestLoginRedirectsToNext(t *testing.T) {
	app := setupApp(t)
	postForm(t, app, "/auth/signup", signupForm("leo"))

	form := url.Values{}
	form.Set("username", "leo")
	form.Set("password", "very-secret-1")
	form.Set("next", "/create")
	resp := postForm(t, app, "/auth/login", form)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/create", resp.Header.Get("Location"))
	assert.NotNil(t, sessionCookie(resp))
}

func TestLoginIgnoresOffsiteNext(t *testing.T) {
	app := setupApp(t)
	postForm(t, app, "/auth/signup", signupForm("leo"))

	form := url.Values{}
	form.Set("username", "leo")
	form.Set("password", "very-secret-1")
	form.Set("next", "https://evil.example/phish")
	resp := postForm(t, app, "/auth/login", form)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginBadPassword(t *testing.T) {
	app := setupApp(t)
	postForm(t, app, "/auth/signup", signupForm("leo"))

	form := url.Values{}
	form.Set("username", "leo")
	form.Set("password", "wrong-password")
	resp := postForm(t, app, "/auth/login", form)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Please enter a correct username and password.")
	assert.Nil(t, sessionCookie(resp))
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	app := setupApp(t)

	form := url.Values{}
	form.Set("username", "ghost")
	form.Set("password", "whatever-123")
	resp := postForm(t, app, "/auth/login", form)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Please enter a correct username and password.")
}

func TestLogoutClearsCookie(t *testing.T) {
	app := setupApp(t)
	resp := postForm(t, app, "/auth/signup", signupForm("leo"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))
}

func TestProtectedPageRedirectsAnonymous(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login?next="+url.QueryEscape("/create"), resp.Header.Get("Location"))
}

func TestLoginPageCarriesNextField(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?next=%2Ffollow", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := bodyString(t, resp)
	assert.Contains(t, body, `name="next"`)
	assert.Contains(t, body, `value="/follow"`)
}
