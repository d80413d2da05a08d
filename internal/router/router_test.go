package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/relief-directory/config"
	"github.com/oksasatya/relief-directory/internal/container"
	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type apiFixture struct {
	t      *testing.T
	c      *container.Container
	engine *gin.Engine
}

func newAPI(t *testing.T, prefix string) *apiFixture {
	t.Helper()
	cfg := &config.Config{
		AppName:     "relief-directory-test",
		Env:         "test",
		APIPrefix:   prefix,
		StoreDriver: "memory",
		JWTSecret:   "test-secret",
		BcryptCost:  bcrypt.MinCost,
	}
	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return &apiFixture{t: t, c: c, engine: NewEngine(c)}
}

func (a *apiFixture) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.SessionCookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", helpers.SessionCookieName)
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// registerAndLogin returns the user id and its session cookie
func (a *apiFixture) registerAndLogin(email string) (string, *http.Cookie) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", map[string]string{"name": "Tester", "email": email, "password": "pw-123"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "pw-123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]string](a.t, w)
	return body["userId"], sessionCookie(a.t, w)
}

func TestRegister(t *testing.T) {
	api := newAPI(t, "")

	w := api.do(http.MethodPost, "/auth/register", map[string]string{"name": "Asha", "email": "Asha@Example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "Registration successful!", body["message"])
	assert.NotEmpty(t, body["userId"])

	w = api.do(http.MethodPost, "/auth/register", map[string]string{"name": "Asha", "email": "asha@example.com", "password": "pw"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"A user with this email already exists."}`, w.Body.String())

	w = api.do(http.MethodPost, "/auth/register", map[string]string{"email": "b@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = api.do(http.MethodPost, "/auth/register", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	api := newAPI(t, "")
	w := api.do(http.MethodPost, "/auth/register", map[string]string{"name": "Asha", "email": "asha@example.com", "password": "right"})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := decode[map[string]string](t, w)["userId"]

	w = api.do(http.MethodPost, "/auth/login", map[string]string{"email": "asha@example.com", "password": "right"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Login successful!","userId":"`+userID+`"}`, w.Body.String())

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
	assert.InDelta(t, 86400, ck.MaxAge, 5)

	wrong := api.do(http.MethodPost, "/auth/login", map[string]string{"email": "asha@example.com", "password": "wrong"})
	unknown := api.do(http.MethodPost, "/auth/login", map[string]string{"email": "ghost@example.com", "password": "right"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	w = api.do(http.MethodPost, "/auth/login", map[string]string{"email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	api := newAPI(t, "")
	w := api.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(t, w)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}

func TestSubmitResource(t *testing.T) {
	api := newAPI(t, "")
	_, ck := api.registerAndLogin("sub@example.com")

	tests := []struct {
		name       string
		body       any
		cookie     *http.Cookie
		wantStatus int
	}{
		{name: "no session", body: map[string]any{"type": "food", "name": "K", "address": "A", "lat": 1, "lng": 2}, wantStatus: http.StatusUnauthorized},
		{name: "forged session", body: map[string]any{"type": "food", "name": "K", "address": "A", "lat": 1, "lng": 2}, cookie: &http.Cookie{Name: helpers.SessionCookieName, Value: "x.y.z"}, wantStatus: http.StatusUnauthorized},
		{name: "valid", body: map[string]any{"type": "food", "name": "Kitchen", "address": "1 Main", "lat": 12.9, "lng": 77.6}, cookie: ck, wantStatus: http.StatusCreated},
		{name: "zero coordinates", body: map[string]any{"type": "safe", "name": "Field", "address": "Equator", "lat": 0, "lng": 0}, cookie: ck, wantStatus: http.StatusCreated},
		{name: "string coordinates", body: map[string]any{"type": "sos", "name": "Roof", "address": "2 Main", "lat": "12.9", "lng": "77.6"}, cookie: ck, wantStatus: http.StatusCreated},
		{name: "lat 91", body: map[string]any{"type": "food", "name": "K", "address": "A", "lat": 91, "lng": 0}, cookie: ck, wantStatus: http.StatusBadRequest},
		{name: "lng 181", body: map[string]any{"type": "food", "name": "K", "address": "A", "lat": 0, "lng": 181}, cookie: ck, wantStatus: http.StatusBadRequest},
		{name: "missing lng", body: map[string]any{"type": "food", "name": "K", "address": "A", "lat": 0}, cookie: ck, wantStatus: http.StatusBadRequest},
		{name: "unknown type", body: map[string]any{"type": "castle", "name": "K", "address": "A", "lat": 0, "lng": 0}, cookie: ck, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}
			w := api.do(http.MethodPost, "/resources", tt.body, cookies...)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusCreated {
				body := decode[map[string]string](t, w)
				assert.Equal(t, "Resource successfully submitted and is pending review!", body["message"])
				assert.NotEmpty(t, body["resourceId"])
			} else {
				assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
			}
		})
	}
}

func TestModerationLifecycle(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t, "")
	_, subCk := api.registerAndLogin("sub@example.com")
	modID, modCk := api.registerAndLogin("mod@example.com")
	require.NoError(t, api.c.Users.AssignRole(ctx, modID, entity.RoleModerator))

	w := api.do(http.MethodPost, "/resources", map[string]any{"type": "food", "name": "Kitchen", "address": "1 Main", "lat": 12.9, "lng": 77.6}, subCk)
	require.Equal(t, http.StatusCreated, w.Code)
	resID := decode[map[string]string](t, w)["resourceId"]

	for _, path := range []string{"/resources", "/resources?type=all", "/resources?type=food"} {
		w = api.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}

	w = api.do(http.MethodGet, "/moderation/resources", nil, subCk)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(http.MethodGet, "/moderation/resources", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/moderation/resources?status=pending", nil, modCk)
	require.Equal(t, http.StatusOK, w.Code)
	queue := decode[[]map[string]any](t, w)
	require.Len(t, queue, 1)
	assert.Equal(t, resID, queue[0]["id"])
	assert.Equal(t, "pending", queue[0]["status"])

	w = api.do(http.MethodPatch, "/moderation/resources/"+resID, map[string]string{"status": "verified"}, subCk)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(http.MethodPatch, "/moderation/resources/"+resID, map[string]string{"status": "published"}, modCk)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(http.MethodPatch, "/moderation/resources/does-not-exist", map[string]string{"status": "verified"}, modCk)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(http.MethodPatch, "/moderation/resources/"+resID, map[string]string{"status": "verified"}, modCk)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"`+resID+`","type":"food","name":"Kitchen","address":"1 Main","lat":12.9,"lng":77.6}]`, w.Body.String())

	w = api.do(http.MethodGet, "/resources?type=food", nil)
	assert.Len(t, decode[[]entity.ResourceSummary](t, w), 1)
	w = api.do(http.MethodGet, "/resources?type=shelter", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
	w = api.do(http.MethodGet, "/resources?type=castle", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHealthzAndPrefix(t *testing.T) {
	api := newAPI(t, "/api")

	w := api.do(http.MethodGet, "/api/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = api.do(http.MethodGet, "/resources", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(http.MethodGet, "/api/resources", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
