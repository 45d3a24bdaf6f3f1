package http_test // 测试包

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "github.com/Faizhasan01/Inkify-backend/internal/handler/http"
	"github.com/Faizhasan01/Inkify-backend/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRoomRouter() (*gin.Engine, *registry.Registry) {
	gin.SetMode(gin.TestMode)
	reg := registry.NewRegistry()
	handler := httpHandler.NewRoomHandler(reg)

	router := gin.New()
	router.POST("/api/rooms", handler.CreateRoom)
	router.GET("/api/rooms/:roomId", handler.GetRoomInfo)
	router.GET("/api/rooms/:roomId/export", handler.ExportBoard)
	return router, reg
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRoomHandler_CreateRoom(t *testing.T) {
	// Arrange
	router, reg := setupRoomRouter()

	// Act
	w := doRequest(router, http.MethodPost, "/api/rooms")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	roomID, _ := body["roomId"].(string)
	assert.Len(t, roomID, 12, "房间 ID 应为 12 个十六进制字符")

	// 创建的房间应已注册
	_, ok := reg.Get(roomID)
	assert.True(t, ok)
}

func TestRoomHandler_GetRoomInfo_ExistingRoom(t *testing.T) {
	// Arrange
	router, reg := setupRoomRouter()
	room := reg.GetOrCreate("known1")
	room.AddPage()

	// Act
	w := doRequest(router, http.MethodGet, "/api/rooms/known1")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "known1", body["roomId"])
	assert.Equal(t, float64(0), body["userCount"])
	assert.Equal(t, float64(2), body["pageCount"])
	assert.NotContains(t, body, "isNew")
}

func TestRoomHandler_GetRoomInfo_UnknownRoom(t *testing.T) {
	// Arrange
	router, reg := setupRoomRouter()

	// Act
	w := doRequest(router, http.MethodGet, "/api/rooms/nosuch")

	// Assert: 不存在的房间返回 isNew 标记而非 404
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["isNew"])
	assert.Equal(t, float64(0), body["userCount"])

	// 查询不应产生创建副作用
	assert.Equal(t, 0, reg.Count(), "查询房间信息不应创建房间")
}

func TestRoomHandler_ExportBoard(t *testing.T) {
	// Arrange
	router, reg := setupRoomRouter()
	room := reg.GetOrCreate("export1")
	room.AppendElement("u1", map[string]interface{}{"kind": "stroke"})
	room.AddPage()

	// Act
	w := doRequest(router, http.MethodGet, "/api/rooms/export1/export")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "export1", body["roomId"])
	pages, ok := body["pages"].([]interface{})
	require.True(t, ok)
	require.Len(t, pages, 2)

	first, _ := pages[0].(map[string]interface{})
	elements, _ := first["elements"].([]interface{})
	assert.Len(t, elements, 1, "导出应包含页面上的元素")
}

func TestRoomHandler_ExportBoard_NotFound(t *testing.T) {
	// Arrange
	router, _ := setupRoomRouter()

	// Act
	w := doRequest(router, http.MethodGet, "/api/rooms/nosuch/export")

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Room not found", body["error"])
}
