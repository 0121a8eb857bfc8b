package spins

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zootechx/spinwheel-backend/internal/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Store, *fakeNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewStore(filepath.Join(t.TempDir(), "spins.json"), nil)
	notifier := &fakeNotifier{}
	handler := NewHandler(NewService(store, notifier, nil), store, nil)

	router := gin.New()
	router.POST("/api/spin", handler.Spin)
	router.GET("/api/spins", handler.List)
	router.GET("/api/export", handler.Export)
	return router, store, notifier
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const spinBody = `{"name":"Asha","email":"asha@example.com","phone":"+91 98765 43210","domain":"Websites","discount":10,"couponCode":"ZTX-WEB10"}`

func TestHandler_Spin_Admit(t *testing.T) {
	router, store, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/spin", spinBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SpinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Allowed)
	assert.True(t, resp.Success)
	assert.Equal(t, MsgCouponSent, resp.Message)
	assert.Equal(t, "ZTX-WEB10", resp.CouponCode)

	assert.Len(t, store.LoadAll(), 1)
}

func TestHandler_Spin_Repeat(t *testing.T) {
	router, store, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK, doJSON(router, http.MethodPost, "/api/spin", spinBody).Code)

	w := doJSON(router, http.MethodPost, "/api/spin", spinBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SpinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Allowed)
	assert.False(t, resp.Success)
	assert.Equal(t, "You have already spun the wheel.", resp.Message)
	assert.Empty(t, resp.CouponCode)

	assert.Len(t, store.LoadAll(), 1)
}

func TestHandler_Spin_MissingField(t *testing.T) {
	router, store, notifier := newTestRouter(t)

	body := `{"name":"Asha","email":"asha@example.com","domain":"Websites","discount":10,"couponCode":"ZTX-WEB10"}`
	w := doJSON(router, http.MethodPost, "/api/spin", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp SpinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Allowed)
	assert.Equal(t, MsgMissingFields, resp.Message)

	assert.Empty(t, store.LoadAll())
	assert.Zero(t, notifier.callCount())
}

func TestHandler_Spin_MalformedBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/spin", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_List_SortedNewestFirst(t *testing.T) {
	router, store, _ := newTestRouter(t)

	older := testRecord(1, "old@example.com")
	older.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newer := testRecord(2, "new@example.com")
	newer.CreatedAt = time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveAll([]models.SpinRecord{older, newer}))

	w := doJSON(router, http.MethodGet, "/api/spins", "")
	require.Equal(t, http.StatusOK, w.Code)

	var records []models.SpinRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "new@example.com", records[0].Email)
	assert.Equal(t, "old@example.com", records[1].Email)
}

func TestHandler_List_EmptyStoreIsEmptyArray(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/spins", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestHandler_Export_CSV(t *testing.T) {
	router, store, _ := newTestRouter(t)

	rec := testRecord(1, "asha@example.com")
	rec.Name = `Asha, "Jr."` // needs quoting
	require.NoError(t, store.SaveAll([]models.SpinRecord{rec}))

	w := doJSON(router, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Name,Email,Phone,Domain,Discount,CouponCode,CreatedAt", lines[0])
	assert.Equal(t, `1,"Asha, ""Jr.""",asha@example.com,+91 98765 43210,Websites,10,ZTX-WEB10,2025-06-01T12:00:00Z`, lines[1])
}

func TestHandler_RoundTrip_AdmitThenList(t *testing.T) {
	router, _, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK, doJSON(router, http.MethodPost, "/api/spin", spinBody).Code)

	w := doJSON(router, http.MethodGet, "/api/spins", "")
	require.Equal(t, http.StatusOK, w.Code)

	var records []models.SpinRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Asha", records[0].Name)
	assert.Equal(t, "asha@example.com", records[0].Email)
	assert.Equal(t, "+91 98765 43210", records[0].Phone)
	assert.Equal(t, "Websites", records[0].Domain)
	assert.Equal(t, 10, records[0].Discount)
	assert.Equal(t, "ZTX-WEB10", records[0].CouponCode)
}
