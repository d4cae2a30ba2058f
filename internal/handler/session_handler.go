package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/dto/response"
	"github.com/Rohit1301k/dareroom/internal/middleware"
	apperrors "github.com/Rohit1301k/dareroom/internal/pkg/errors"
	"github.com/Rohit1301k/dareroom/internal/service"
)

type SessionHandler struct {
	roomService *service.RoomService
}

func NewSessionHandler(roomService *service.RoomService) *SessionHandler {
	return &SessionHandler{
		roomService: roomService,
	}
}

// Get godoc
// @Summary Resume a session
// @Description Resolve the caller's session token back to their room and player, for reconnecting clients
// @Tags session
// @Produce json
// @Security SessionToken
// @Success 200 {object} response.Response{data=response.JoinedRoomResponse}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /api/v1/session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Error(c, apperrors.ErrSessionRequired)
		return
	}

	room, player, err := h.roomService.Resume(c.Request.Context(), sess.RoomID, sess.PlayerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewJoinedRoomResponse(room, player, sess.Token))
}
