package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeshanxviii/attendance-system/models"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler()
	router := gin.New()
	router.GET("/api/version", h.Version)
	router.POST("/api/room", h.CreateRoom)
	return router
}

func postRoom(router *gin.Engine, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/room", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRoomEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := postRoom(router, `{"name":"CS101","duration":30}`, teacherOne.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	var room models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
	assert.Regexp(t, `^[A-Z0-9]{6}$`, room.Code)
	assert.Equal(t, teacherOne.ID, room.TeacherID)
	assert.Equal(t, models.RoomActive, room.Status)
	assert.True(t, room.Settings.AllowLateJoin, "late join defaults on")
}

func TestCreateRoomEndpointValidation(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{
		`{}`,
		`{"name":"CS101"}`,
		`{"duration":30}`,
		`{"name":"CS101","duration":0}`,
		`not json`,
	} {
		w := postRoom(router, body, teacherOne.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.JSONEq(t, `{"message":"Missing fields"}`, w.Body.String())
	}
}

func TestCreateRoomEndpointIdentity(t *testing.T) {
	router := newTestRouter(t)

	w := postRoom(router, `{"name":"CS101","duration":30}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postRoom(router, `{"name":"CS101","duration":30}`, "ghost")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// role comes from the resolved user, not the request
	w = postRoom(router, `{"name":"CS101","duration":30}`, studentOne.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVersionEndpoint(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"1.0.0"}`, w.Body.String())
}
