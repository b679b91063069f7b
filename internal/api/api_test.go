package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/reminisce-app/journal-server/internal/fixture"
	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/services"
	"github.com/reminisce-app/journal-server/internal/session"
	"github.com/reminisce-app/journal-server/internal/store/memstore"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	s := memstore.New()
	require.NoError(t, fixture.Seed(context.Background(), s))
	sess := session.NewManager(s, session.NewFileSlot(t.TempDir()), zerolog.Nop())
	cats := services.NewCategoryService(s, sess, zerolog.Nop())
	mems := services.NewMemoryService(s, sess, zerolog.Nop())
	return NewRouter(sess, cats, mems)
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, r http.Handler, email string) {
	t.Helper()
	rr := do(t, r, "POST", "/api/auth/login", map[string]string{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	// no session yet
	rr := do(t, r, "GET", "/api/auth/session", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	// bad credentials
	rr = do(t, r, "POST", "/api/auth/login", map[string]string{"email": "john@example.com", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// good credentials
	rr = do(t, r, "POST", "/api/auth/login", map[string]string{"email": "john@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rr.Code)
	var u model.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	require.Equal(t, "user_1", u.ID)

	rr = do(t, r, "GET", "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// rename
	rr = do(t, r, "PATCH", "/api/profile", map[string]string{"name": "Johnny"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	require.Equal(t, "Johnny", u.Name)

	// logout ends the session
	rr = do(t, r, "POST", "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, r, "GET", "/api/auth/session", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	// profile update without a session
	rr = do(t, r, "PATCH", "/api/profile", map[string]string{"name": "Ghost"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSignupEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rr := do(t, r, "POST", "/api/auth/signup", map[string]string{"name": "New", "email": "new@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, rr.Code)

	// duplicate email conflicts
	rr = do(t, r, "POST", "/api/auth/signup", map[string]string{"name": "Dup", "email": "new@example.com", "password": "pw"})
	require.Equal(t, http.StatusConflict, rr.Code)

	// missing fields are rejected
	rr = do(t, r, "POST", "/api/auth/signup", map[string]string{"name": "", "email": "x@example.com", "password": "pw"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	r := newTestRouter(t)

	// everything behind the session
	rr := do(t, r, "GET", "/api/categories", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	login(t, r, "john@example.com")

	rr = do(t, r, "GET", "/api/categories", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listResp struct {
		Categories []struct {
			model.Category
			MemoryCount int `json:"memoryCount"`
		} `json:"categories"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Equal(t, 3, listResp.Count)
	// Travel holds memory_2 and memory_4
	require.Equal(t, "Travel", listResp.Categories[1].Name)
	require.Equal(t, 2, listResp.Categories[1].MemoryCount)

	// create
	rr = do(t, r, "POST", "/api/categories", map[string]string{"name": "Hobbies", "color": "#112233"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var c model.Category
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	require.Equal(t, "user_1", c.UserID)

	// bad color
	rr = do(t, r, "POST", "/api/categories", map[string]string{"name": "X", "color": "red"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// update
	rr = do(t, r, "PUT", "/api/categories/"+c.ID, map[string]string{"name": "Pastimes", "color": "#445566"})
	require.Equal(t, http.StatusOK, rr.Code)

	// delete empty category succeeds
	rr = do(t, r, "DELETE", "/api/categories/"+c.ID, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// deleting a referenced category conflicts
	rr = do(t, r, "DELETE", "/api/categories/category_2", nil)
	require.Equal(t, http.StatusConflict, rr.Code)

	// another user's category is invisible
	rr = do(t, r, "GET", "/api/categories/category_4", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMemoryEndpoints(t *testing.T) {
	r := newTestRouter(t)
	login(t, r, "john@example.com")

	var listResp struct {
		Memories []*model.Memory `json:"memories"`
		Count    int             `json:"count"`
	}

	rr := do(t, r, "GET", "/api/memories", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Equal(t, 4, listResp.Count)
	require.Equal(t, "memory_1", listResp.Memories[0].ID) // insertion order

	// timeline ordering
	rr = do(t, r, "GET", "/api/memories?sort=date", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Equal(t, "2023-08-05", listResp.Memories[0].Date)
	require.Equal(t, "2023-03-22", listResp.Memories[3].Date)

	// create
	rr = do(t, r, "POST", "/api/memories", model.CreateMemoryRequest{
		Title: "Museum Day", Date: "2024-04-01", CategoryID: "category_3",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var m model.Memory
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	require.NotEmpty(t, m.ID)

	// invalid date
	rr = do(t, r, "POST", "/api/memories", model.CreateMemoryRequest{Title: "X", Date: "April 1st", CategoryID: "category_3"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// partial update
	rr = do(t, r, "PATCH", "/api/memories/"+m.ID, map[string]string{"description": "Dinosaur hall"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	require.Equal(t, "Dinosaur hall", m.Description)
	require.Equal(t, "Museum Day", m.Title)

	// category-scoped listing
	rr = do(t, r, "GET", "/api/categories/category_2/memories", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Equal(t, 2, listResp.Count)

	// delete, then 404
	rr = do(t, r, "DELETE", "/api/memories/"+m.ID, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, r, "DELETE", "/api/memories/"+m.ID, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSearchEndpoint(t *testing.T) {
	r := newTestRouter(t)
	login(t, r, "john@example.com")

	var resp struct {
		Memories []*model.Memory `json:"memories"`
		Count    int             `json:"count"`
	}

	rr := do(t, r, "GET", "/api/search?q=PARIS", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "memory_2", resp.Memories[0].ID)

	// blank query short-circuits
	rr = do(t, r, "GET", "/api/search?q=%20", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Count)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	BindServiceHealth(func() bool { return true })
	defer BindServiceHealth(func() bool { return healthyFlag.Load() == 1 })

	rr := do(t, r, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "healthy")
}
