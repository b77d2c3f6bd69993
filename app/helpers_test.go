package app

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/session"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/security"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Abcdef12"

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t      *testing.T
	d      *internal.Deps
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data", 0o755))

	s, err := store.New(fs, "/data")
	require.NoError(t, err)

	hasher, err := security.NewHasher(security.AlgBcrypt)
	require.NoError(t, err)
	hasher.BcryptCost = bcrypt.MinCost

	d := &internal.Deps{
		Store:        s,
		Hasher:       hasher,
		Sessions:     security.NewSessions("0123456789abcdef0123456789abcdef"),
		Mailer:       service.NewMailer(service.MailConfig{}, false),
		PublicURL:    "http://localhost:3000",
		MaxImageSize: 1 << 20,
	}

	return &testApp{
		t:      t,
		d:      d,
		router: NewRouter(d, RouterConfig{}),
	}
}

func (a *testApp) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// createUser stores a user directly, skipping the sign up flow
func (a *testApp) createUser(email string, verified, admin bool) *model.User {
	a.t.Helper()

	hash, err := a.d.Hasher.Hash(testPassword)
	require.NoError(a.t, err)

	u, err := a.d.Store.Users.Create(&model.User{
		ID:         "user-" + email,
		Email:      email,
		Password:   hash,
		IsVerified: verified,
		IsAdmin:    admin,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(a.t, err)

	return u
}

func (a *testApp) signIn(email, password string) *http.Cookie {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/signin", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}

	a.t.Fatal("no session cookie set")
	return nil
}

func (a *testApp) createProduct(id, name, price, category string) {
	a.t.Helper()

	_, err := a.d.Store.Products.Create(&model.Product{
		ID:          id,
		Name:        name,
		Description: "A " + name + " for the test catalog",
		Price:       decimal.RequireFromString(price),
		Category:    category,
		Image:       "https://cdn.example.com/" + id + ".png",
		Stock:       10,
	})
	require.NoError(a.t, err)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestID"`
}

type messageResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
