package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/dto/request"
	"github.com/Rohit1301k/dareroom/internal/dto/response"
	"github.com/Rohit1301k/dareroom/internal/middleware"
	"github.com/Rohit1301k/dareroom/internal/model"
	apperrors "github.com/Rohit1301k/dareroom/internal/pkg/errors"
	"github.com/Rohit1301k/dareroom/internal/pkg/utils"
	"github.com/Rohit1301k/dareroom/internal/service"
	"github.com/Rohit1301k/dareroom/internal/session"
)

type RoomHandler struct {
	roomService *service.RoomService
	sessions    *session.Manager
}

func NewRoomHandler(roomService *service.RoomService, sessions *session.Manager) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		sessions:    sessions,
	}
}

// Create godoc
// @Summary Create a room
// @Description Create a new game room; the caller becomes the host and receives a session token
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body request.CreateRoomRequest true "Room settings"
// @Success 201 {object} response.Response{data=response.JoinedRoomResponse}
// @Failure 400 {object} response.Response
// @Router /api/v1/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "malformed request body")
		return
	}

	v := utils.NewValidator()
	v.ValidateNickname("nickname", req.Nickname)
	v.ValidateRoomType("type", req.Type)
	v.ValidateCategories("categories", req.Categories)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	room, host, err := h.roomService.Create(c.Request.Context(), &service.CreateRoomInput{
		Nickname:   req.Nickname,
		Type:       model.RoomType(req.Type),
		Categories: req.Categories,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), room.RoomID, host.ID)
	if err != nil {
		response.Error(c, apperrors.ErrInternal)
		return
	}

	response.Created(c, response.NewJoinedRoomResponse(room, host, sess.Token))
}

// Join godoc
// @Summary Join a room
// @Description Join an existing room by code and receive a session token
// @Tags rooms
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body request.JoinRoomRequest true "Nickname"
// @Success 201 {object} response.Response{data=response.JoinedRoomResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /api/v1/rooms/{code}/join [post]
func (h *RoomHandler) Join(c *gin.Context) {
	code := c.Param("code")

	var req request.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "malformed request body")
		return
	}

	v := utils.NewValidator()
	v.ValidateRoomCode("code", code)
	v.ValidateNickname("nickname", req.Nickname)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	room, player, err := h.roomService.Join(c.Request.Context(), &service.JoinRoomInput{
		Code:     code,
		Nickname: req.Nickname,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), room.RoomID, player.ID)
	if err != nil {
		response.Error(c, apperrors.ErrInternal)
		return
	}

	response.Created(c, response.NewJoinedRoomResponse(room, player, sess.Token))
}

// Get godoc
// @Summary Get room details
// @Description Get a room and its active players by code
// @Tags rooms
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Response{data=response.RoomDetailResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{code} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	code := c.Param("code")

	v := utils.NewValidator()
	v.ValidateRoomCode("code", code)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	room, players, err := h.roomService.Get(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewRoomDetailResponse(room, players))
}

// Leave godoc
// @Summary Leave a room
// @Description Leave the game; a leaving host ends the game for everyone
// @Tags rooms
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Success 204 "No Content"
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{code}/leave [post]
func (h *RoomHandler) Leave(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.roomService.Leave(c.Request.Context(), code, playerID); err != nil {
		response.Error(c, err)
		return
	}

	if sess := middleware.GetSession(c); sess != nil {
		// A stale token after leaving is harmless but pointless.
		_ = h.sessions.Delete(c.Request.Context(), sess.Token)
	}

	response.NoContent(c)
}

// requireSameRoom rejects callers whose session belongs to a different
// room than the one addressed in the URL. Codes compare
// case-insensitively.
func requireSameRoom(c *gin.Context, code string) error {
	sessionRoom := middleware.GetRoomID(c)
	if sessionRoom == "" {
		return apperrors.ErrSessionRequired
	}
	if !strings.EqualFold(strings.TrimSpace(code), sessionRoom) {
		return apperrors.ErrWrongRoom
	}
	return nil
}
