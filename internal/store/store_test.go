package store

import (
	"bitwise74/shop-api/internal/model"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "/data"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(dataDir, 0o755))

	s, err := New(fs, dataDir)
	require.NoError(t, err)

	return s, fs
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProducts(t *testing.T, s *Store) {
	t.Helper()

	products := []model.Product{
		{ID: "p1", Name: "Wireless Mouse", Description: "Ergonomic mouse for everyday use", Price: price("25.00"), Category: "electronics", Stock: 10},
		{ID: "p2", Name: "Mechanical Keyboard", Description: "Clicky switches, RGB backlight", Price: price("89.99"), Category: "electronics", Stock: 5},
		{ID: "p3", Name: "Coffee Mug", Description: "Ceramic mug that fits a mouse pad", Price: price("9.50"), Category: "kitchen", Stock: 40},
		{ID: "p4", Name: "Desk Lamp", Description: "LED lamp with dimmer", Price: price("40.00"), Category: "home", Stock: 0},
	}

	for i := range products {
		_, err := s.Products.Create(&products[i])
		require.NoError(t, err)
	}
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestMissingFileIsMaterialized(t *testing.T) {
	s, fs := newTestStore(t)

	users, err := s.Users.List()
	require.NoError(t, err)
	assert.Empty(t, users)

	data, err := afero.ReadFile(fs, filepath.Join(dataDir, "users.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCorruptFile(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dataDir, "products.json"), []byte("[{"), 0o644))

	_, err := s.Products.List(nil)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = s.Products.Update("p1", ProductUpdate{})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestUsers(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Users.Create(&model.User{
		ID:                "user-1",
		Email:             "Alice@Example.com",
		Password:          "hash",
		VerificationToken: "tok",
		CreatedAt:         time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.ID)

	t.Run("email lookup ignores case", func(t *testing.T) {
		u, err := s.Users.GetByEmail("alice@example.COM")
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)

		_, err = s.Users.GetByEmail("bob@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := s.Users.Create(&model.User{ID: "user-2", Email: "alice@example.com"})
		assert.ErrorIs(t, err, ErrDuplicate)

		users, err := s.Users.List()
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("update merges and clears", func(t *testing.T) {
		verified, empty := true, ""
		u, err := s.Users.Update("user-1", UserUpdate{IsVerified: &verified, VerificationToken: &empty})
		require.NoError(t, err)
		assert.True(t, u.IsVerified)
		assert.Empty(t, u.VerificationToken)
		assert.Equal(t, "hash", u.Password)

		stored, err := s.Users.Get("user-1")
		require.NoError(t, err)
		assert.Equal(t, u, stored)
	})

	t.Run("find by predicate", func(t *testing.T) {
		_, err := s.Users.Find(func(u *model.User) bool { return u.VerificationToken == "tok" })
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClearExpiredResetTokens(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now()
	past, future := now.Add(-time.Minute), now.Add(time.Hour)

	for _, u := range []model.User{
		{ID: "a", Email: "a@x.com", ResetToken: "ra", ResetTokenExpiry: &past},
		{ID: "b", Email: "b@x.com", ResetToken: "rb", ResetTokenExpiry: &future},
		{ID: "c", Email: "c@x.com"},
	} {
		_, err := s.Users.Create(&u)
		require.NoError(t, err)
	}

	n, err := s.Users.ClearExpiredResetTokens(now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	a, err := s.Users.Get("a")
	require.NoError(t, err)
	assert.Empty(t, a.ResetToken)
	assert.Nil(t, a.ResetTokenExpiry)

	b, err := s.Users.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "rb", b.ResetToken)
}

func TestConsumeVerificationToken(t *testing.T) {
	s, fs := newTestStore(t)
	_, err := s.Users.Create(&model.User{ID: "a", Email: "a@x.com", VerificationToken: "tok"})
	require.NoError(t, err)

	_, err = s.Users.ConsumeVerificationToken("a", "wrong")
	assert.ErrorIs(t, err, ErrInvalidToken)

	u, err := s.Users.ConsumeVerificationToken("a", "tok")
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	assert.Empty(t, u.VerificationToken)
	assert.Equal(t, model.HashVerificationToken("tok"), u.VerifiedTokenHash)

	before, err := afero.ReadFile(fs, filepath.Join(dataDir, "users.json"))
	require.NoError(t, err)

	_, err = s.Users.ConsumeVerificationToken("a", "tok")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	_, err = s.Users.ConsumeVerificationToken("a", "wrong")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.Users.ConsumeVerificationToken("missing", "tok")
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := afero.ReadFile(fs, filepath.Join(dataDir, "users.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestConsumeResetToken(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now()
	past, future := now.Add(-time.Minute), now.Add(time.Hour)

	for _, u := range []model.User{
		{ID: "a", Email: "a@x.com", Password: "old", ResetToken: "ra", ResetTokenExpiry: &future},
		{ID: "b", Email: "b@x.com", Password: "old", ResetToken: "rb", ResetTokenExpiry: &past},
	} {
		_, err := s.Users.Create(&u)
		require.NoError(t, err)
	}

	_, err := s.Users.ConsumeResetToken("a", "rb", "new", now)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.Users.ConsumeResetToken("b", "rb", "new", now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	u, err := s.Users.ConsumeResetToken("a", "ra", "new", now)
	require.NoError(t, err)
	assert.Equal(t, "new", u.Password)
	assert.Empty(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiry)

	_, err = s.Users.ConsumeResetToken("a", "ra", "newer", now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	b, err := s.Users.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "old", b.Password)
}

func TestConcurrentResetsConsumeOnce(t *testing.T) {
	s, _ := newTestStore(t)
	future := time.Now().Add(time.Hour)
	_, err := s.Users.Create(&model.User{ID: "a", Email: "a@x.com", ResetToken: "ra", ResetTokenExpiry: &future})
	require.NoError(t, err)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won []string
	)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash := fmt.Sprintf("hash-%d", i)
			if _, err := s.Users.ConsumeResetToken("a", "ra", hash, time.Now()); err == nil {
				mu.Lock()
				won = append(won, hash)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, won, 1)
	u, err := s.Users.Get("a")
	require.NoError(t, err)
	assert.Equal(t, won[0], u.Password)
}

func TestProductFilters(t *testing.T) {
	s, _ := newTestStore(t)
	seedProducts(t, s)

	lo, hi := price("10"), price("40")

	tests := []struct {
		name   string
		filter *ProductFilter
		want   []string
	}{
		{"no filter", nil, []string{"p1", "p2", "p3", "p4"}},
		{"category", &ProductFilter{Category: "electronics"}, []string{"p1", "p2"}},
		{"category is exact", &ProductFilter{Category: "Electronics"}, []string{}},
		{"search name and description", &ProductFilter{Search: "MOUSE"}, []string{"p1", "p3"}},
		{"inclusive bounds", &ProductFilter{MinPrice: &lo, MaxPrice: &hi}, []string{"p1", "p4"}},
		{"intersection", &ProductFilter{Category: "electronics", Search: "mouse", MinPrice: &lo, MaxPrice: &hi}, []string{"p1"}},
		{"nothing matches", &ProductFilter{Category: "kitchen", MinPrice: &lo}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Products.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	seedProducts(t, s)

	newPrice, stock := price("19.99"), 0
	p, err := s.Products.Update("p1", ProductUpdate{Price: &newPrice, Stock: &stock})
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(newPrice))
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "Wireless Mouse", p.Name)

	ok, err := s.Products.Delete("p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Products.Delete("p1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Products.Get("p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMissingLeavesFileUntouched(t *testing.T) {
	s, fs := newTestStore(t)
	seedProducts(t, s)

	_, err := s.Users.Create(&model.User{ID: "u1", Email: "u1@x.com"})
	require.NoError(t, err)
	_, err = s.Orders.Create(&model.Order{ID: "o1", UserID: "u1", Status: model.OrderPending})
	require.NoError(t, err)

	read := func(name string) []byte {
		data, err := afero.ReadFile(fs, filepath.Join(dataDir, name))
		require.NoError(t, err)
		return data
	}

	before := map[string][]byte{
		"users.json":    read("users.json"),
		"products.json": read("products.json"),
		"orders.json":   read("orders.json"),
	}

	name := "ghost"
	status := model.OrderShipped

	_, err = s.Users.Update("missing", UserUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Products.Update("missing", ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Orders.Update("missing", OrderUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Orders.SetStatus("missing", status)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Products.Delete("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	for file, data := range before {
		assert.Equal(t, data, read(file), file)
	}
}

func TestOrders(t *testing.T) {
	s, _ := newTestStore(t)

	for i, owner := range []string{"u1", "u2", "u1"} {
		_, err := s.Orders.Create(&model.Order{
			ID:     fmt.Sprintf("o%d", i),
			UserID: owner,
			Items:  []model.OrderItem{{ProductID: "p1", Price: price("10"), Quantity: 1}},
			Total:  price("10"),
			Status: model.OrderPending,
		})
		require.NoError(t, err)
	}

	all, err := s.Orders.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := s.Orders.List("u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := s.Orders.List("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)

	o, err := s.Orders.SetStatus("o0", model.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, o.Status)

	_, err = s.Orders.SetStatus("o0", model.OrderCancelled)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	stored, err := s.Orders.Get("o0")
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, stored.Status)
	assert.True(t, stored.Total.Equal(price("10")))
}

func TestConcurrentWritesAreSerialized(t *testing.T) {
	s, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Products.Create(&model.Product{ID: fmt.Sprintf("p%d", i), Price: price("1")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	products, err := s.Products.List(nil)
	require.NoError(t, err)
	assert.Len(t, products, 50)
}

func TestNewCreatesDataDir(t *testing.T) {
	orig := inDocker
	t.Cleanup(func() { inDocker = orig })

	inDocker = func() bool { return false }
	fs := afero.NewMemMapFs()

	_, err := New(fs, "/var/shop/data")
	require.NoError(t, err)

	ok, err := afero.DirExists(fs, "/var/shop/data")
	require.NoError(t, err)
	assert.True(t, ok)

	inDocker = func() bool { return true }
	_, err = New(afero.NewMemMapFs(), "/not/mounted")
	assert.ErrorContains(t, err, "not mounted")
}
