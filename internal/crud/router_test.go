package crud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autocrud/autocrud/internal/db"
	"github.com/autocrud/autocrud/internal/discovery"
	"github.com/autocrud/autocrud/internal/models"
	"github.com/autocrud/autocrud/internal/schemas"
)

// newTestEngine builds a full engine over a fresh SQLite database with the
// real discovered models and schemas.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, errOpen := db.Open("file:" + filepath.Join(t.TempDir(), "crud-test.db"))
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}

	loader := discovery.NewLoader()
	loader.DiscoverModels(models.Units())
	loader.DiscoverSchemas(schemas.Units())
	matched := loader.Match()
	if errMigrate := db.Migrate(conn, loader.ModelValues()); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	engine := gin.New()
	Mount(engine, conn, matched)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func createUser(t *testing.T, engine *gin.Engine, body string) map[string]any {
	t.Helper()
	w := doRequest(t, engine, http.MethodPost, "/users/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create user: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return decodeObject(t, w)
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	engine := newTestEngine(t)

	created := createUser(t, engine, `{"name":"Alice","email":"alice@example.com","age":30}`)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected generated id, got %v", created["id"])
	}
	if _, errParse := uuid.Parse(id); errParse != nil {
		t.Fatalf("expected uuid id, got %q", id)
	}

	w := doRequest(t, engine, http.MethodGet, "/users/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get user: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	fetched := decodeObject(t, w)

	if fetched["name"] != "Alice" || fetched["email"] != "alice@example.com" {
		t.Fatalf("expected submitted values back, got %v", fetched)
	}
	if fetched["age"] != float64(30) {
		t.Fatalf("expected age 30, got %v", fetched["age"])
	}
	if fetched["is_active"] != true {
		t.Fatalf("expected default is_active=true for omitted field, got %v", fetched["is_active"])
	}
	if fetched["phone"] != nil {
		t.Fatalf("expected null phone, got %v", fetched["phone"])
	}
	if createdAt, _ := fetched["created_at"].(string); createdAt == "" {
		t.Fatalf("expected serialized created_at, got %v", fetched["created_at"])
	}
}

func TestCreateExplicitZeroValues(t *testing.T) {
	engine := newTestEngine(t)

	created := createUser(t, engine, `{"name":"Zed","email":"zed@example.com","is_active":false}`)
	if created["is_active"] != false {
		t.Fatalf("expected explicit is_active=false to persist, got %v", created["is_active"])
	}

	w := doRequest(t, engine, http.MethodGet, "/users/"+created["id"].(string), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get user: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fetched := decodeObject(t, w); fetched["is_active"] != false {
		t.Fatalf("expected is_active=false after re-read, got %v", fetched["is_active"])
	}

	// Empty string on a defaulted text column must survive as well.
	w = doRequest(t, engine, http.MethodPost, "/admins/", `{"username":"ops","email":"ops@example.com","password_hash":"x","role":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create admin: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if admin := decodeObject(t, w); admin["role"] != "" {
		t.Fatalf("expected explicit empty role to persist, got %v", admin["role"])
	}

	// An omitted defaulted column still takes the database default.
	other := createUser(t, engine, `{"name":"Yan","email":"yan@example.com"}`)
	if other["is_active"] != true {
		t.Fatalf("expected default is_active=true for omitted field, got %v", other["is_active"])
	}
}

func TestCreateNullRejectedOnValueColumn(t *testing.T) {
	engine := newTestEngine(t)

	w := doRequest(t, engine, http.MethodPost, "/users/", `{"name":"Nia","email":"nia@example.com","is_active":null}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for null on a non-nullable column, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "is_active") {
		t.Fatalf("expected error naming the column, got %s", w.Body.String())
	}

	// Null on a pointer-backed column clears it and stays accepted.
	created := createUser(t, engine, `{"name":"Nia","email":"nia@example.com","phone":null}`)
	if created["phone"] != nil {
		t.Fatalf("expected null phone, got %v", created["phone"])
	}
}

func TestCreateValidation(t *testing.T) {
	engine := newTestEngine(t)

	w := doRequest(t, engine, http.MethodPost, "/users/", `{"email":"a@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing required field, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "name") {
		t.Fatalf("expected error naming the field, got %s", w.Body.String())
	}

	w = doRequest(t, engine, http.MethodPost, "/users/", `{"name":"A","email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", w.Code)
	}
}

func TestPartialUpdate(t *testing.T) {
	engine := newTestEngine(t)

	created := createUser(t, engine, `{"name":"Bob","email":"bob@example.com","age":40,"phone":"555-0100"}`)
	id := created["id"].(string)

	w := doRequest(t, engine, http.MethodPut, "/users/"+id, `{"age":41}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decodeObject(t, w)

	if updated["age"] != float64(41) {
		t.Fatalf("expected age 41, got %v", updated["age"])
	}
	if updated["name"] != "Bob" || updated["email"] != "bob@example.com" || updated["phone"] != "555-0100" {
		t.Fatalf("expected untouched fields to keep prior values, got %v", updated)
	}
}

func TestUpdateNotFound(t *testing.T) {
	engine := newTestEngine(t)

	w := doRequest(t, engine, http.MethodPut, "/users/"+uuid.NewString(), `{"age":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestDeleteIdempotence(t *testing.T) {
	engine := newTestEngine(t)

	created := createUser(t, engine, `{"name":"Carol","email":"carol@example.com"}`)
	id := created["id"].(string)

	w := doRequest(t, engine, http.MethodDelete, "/users/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User deleted successfully") {
		t.Fatalf("expected model-named success message, got %s", w.Body.String())
	}

	w = doRequest(t, engine, http.MethodDelete, "/users/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for already-deleted id, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Fatalf("expected model-named message, got %s", w.Body.String())
	}
}

func TestGetNotFound(t *testing.T) {
	engine := newTestEngine(t)

	w := doRequest(t, engine, http.MethodGet, "/users/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPaginationBounds(t *testing.T) {
	engine := newTestEngine(t)

	w := doRequest(t, engine, http.MethodGet, "/users/?limit=1001", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for limit=1001, got %d", w.Code)
	}
	w = doRequest(t, engine, http.MethodGet, "/users/?skip=-1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for skip=-1, got %d", w.Code)
	}
	w = doRequest(t, engine, http.MethodGet, "/users/?limit=1000", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for limit=1000, got %d", w.Code)
	}
	w = doRequest(t, engine, http.MethodGet, "/users/?limit=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %d", w.Code)
	}
}

func TestListPagination(t *testing.T) {
	engine := newTestEngine(t)

	for i := 0; i < 3; i++ {
		createUser(t, engine, fmt.Sprintf(`{"name":"User%d","email":"user%d@example.com"}`, i, i))
	}

	w := doRequest(t, engine, http.MethodGet, "/users/?skip=1&limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestDuplicateEmailConflict(t *testing.T) {
	engine := newTestEngine(t)

	createUser(t, engine, `{"name":"Dan","email":"dan@example.com"}`)
	w := doRequest(t, engine, http.MethodPost, "/users/", `{"name":"Dan2","email":"dan@example.com"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Email already exists") {
		t.Fatalf("expected email-specific message, got %s", w.Body.String())
	}
}

func TestDuplicateUsernameConflict(t *testing.T) {
	engine := newTestEngine(t)

	body := `{"username":"root","email":"root@example.com","password_hash":"x"}`
	w := doRequest(t, engine, http.MethodPost, "/admins/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create admin: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, engine, http.MethodPost, "/admins/", `{"username":"root","email":"other@example.com","password_hash":"x"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Username already exists") {
		t.Fatalf("expected username-specific message, got %s", w.Body.String())
	}
}

func TestEmployeeTypedFields(t *testing.T) {
	engine := newTestEngine(t)

	managerID := uuid.NewString()
	body := fmt.Sprintf(`{
		"employee_id": "E-1001",
		"first_name": "Eve",
		"last_name": "Stone",
		"email": "eve@example.com",
		"salary": 95000.5,
		"hire_date": "2024-01-02T00:00:00Z",
		"manager_id": %q
	}`, managerID)

	w := doRequest(t, engine, http.MethodPost, "/employees/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create employee: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeObject(t, w)

	if created["salary"] != 95000.5 {
		t.Fatalf("expected salary 95000.5, got %v", created["salary"])
	}
	if created["hire_date"] != "2024-01-02T00:00:00Z" {
		t.Fatalf("expected hire_date round-trip, got %v", created["hire_date"])
	}
	if created["manager_id"] != managerID {
		t.Fatalf("expected manager_id %q, got %v", managerID, created["manager_id"])
	}

	w = doRequest(t, engine, http.MethodPost, "/employees/", `{
		"employee_id": "E-1001",
		"first_name": "Other",
		"last_name": "Person",
		"email": "other@example.com"
	}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate employee id, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Employee ID already exists") {
		t.Fatalf("expected employee-id-specific message, got %s", w.Body.String())
	}
}
