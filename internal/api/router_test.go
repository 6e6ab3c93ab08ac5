package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/edenniyi/shopstack-be/internal/api"
	"github.com/edenniyi/shopstack-be/internal/auth"
	"github.com/edenniyi/shopstack-be/internal/database"
	"github.com/edenniyi/shopstack-be/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := api.NewRouter(tokens, services.NewUserService(db), services.NewProductService(db), "*")

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = db.Close()
	})
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerUser(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "pw123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupLoginAndMe(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, resp.Header.Get("Authorization"), "Bearer ")

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")

	// duplicate email
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name":     "Alice again",
		"email":    "alice@example.com",
		"password": "other",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User with that email already exists", body["message"])

	// login
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/users/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// wrong password
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/users/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "nope",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["message"])

	// me
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", me["name"])
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Len(t, me, 3) // id, name, email only

	// me without a token
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing auth token", body["message"])
}

func TestSignupValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name": "Alice",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name":     "Alice",
		"email":    "not-an-email",
		"password": "pw123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown fields are ignored rather than rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "pw123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/users/logout", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// The server sets "Bearer " with an empty credential; clients trim the
	// trailing space when parsing the header.
	assert.Equal(t, "Bearer", resp.Header.Get("Authorization"))
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Alice", "alice@example.com")

	// create
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", token, map[string]any{
		"name":        "Notebook",
		"description": "Dotted, 120 pages",
		"price":       9.5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product, ok := body["product"].(map[string]any)
	require.True(t, ok)
	productID, _ := product["id"].(string)
	require.NotEmpty(t, productID)
	assert.Equal(t, 9.5, product["price"])

	// list contains exactly that product
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/products", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products, ok := body["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 1)
	first := products[0].(map[string]any)
	assert.Equal(t, productID, first["id"])

	// update
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/products/"+productID, token, map[string]any{
		"name":        "Notebook XL",
		"description": "Dotted, 240 pages",
		"price":       14.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated, ok := body["updatedProduct"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Notebook XL", updated["name"])
	assert.Equal(t, 14.0, updated["price"])

	// delete
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	deleted, ok := body["product"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, productID, deleted["id"])

	// list is empty again
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/products", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products, ok = body["products"].([]any)
	require.True(t, ok)
	assert.Empty(t, products)
}

func TestProductCrossOwnerIsolation(t *testing.T) {
	srv := newTestServer(t)
	aliceToken := registerUser(t, srv, "Alice", "alice@example.com")
	bobToken := registerUser(t, srv, "Bob", "bob@example.com")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", aliceToken, map[string]any{
		"name":        "Chair",
		"description": "A chair",
		"price":       10.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := body["product"].(map[string]any)["id"].(string)

	// Bob never sees Alice's product
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/products", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["products"])

	// Bob's update is forbidden
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/products/"+productID, bobToken, map[string]any{
		"name":        "Hijacked",
		"description": "Nope",
		"price":       0.0,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", body["message"])

	// Bob's delete matches nothing
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/products/"+productID, bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", body["message"])

	// Alice's product is still there, unchanged
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/products", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Chair", products[0].(map[string]any)["name"])
}

func TestProductValidation(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Alice", "alice@example.com")

	// missing price
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/products", token, map[string]any{
		"name":        "Chair",
		"description": "A chair",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// mistyped price
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/products", token, map[string]any{
		"name":        "Chair",
		"description": "A chair",
		"price":       "ten",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// explicit zero price is valid
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/products", token, map[string]any{
		"name":        "Freebie",
		"description": "On the house",
		"price":       0.0,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestProductsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/products", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing auth token", body["message"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/products", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid auth token", body["message"])
}

func TestAPIDocs(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api-docs", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.0", body["swagger"])

	paths, ok := body["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/users")
	assert.Contains(t, paths, "/products")
	assert.Contains(t, paths, "/products/{id}")
}
