package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/dto/request"
	"github.com/Rohit1301k/dareroom/internal/dto/response"
	"github.com/Rohit1301k/dareroom/internal/middleware"
	"github.com/Rohit1301k/dareroom/internal/pkg/utils"
	"github.com/Rohit1301k/dareroom/internal/service"
)

type MessageHandler struct {
	messageService  *service.MessageService
	presenceService *service.PresenceService
}

func NewMessageHandler(
	messageService *service.MessageService,
	presenceService *service.PresenceService,
) *MessageHandler {
	return &MessageHandler{
		messageService:  messageService,
		presenceService: presenceService,
	}
}

// Send godoc
// @Summary Send a message
// @Description Send a chat message to the room; media uses the [gif:url] and [image:data-url] body forms
// @Tags messages
// @Accept json
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Param request body request.SendMessageRequest true "Message body"
// @Success 201 {object} response.Response{data=response.MessageResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /api/v1/rooms/{code}/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "malformed request body")
		return
	}

	v := utils.NewValidator()
	v.Required("message", req.Message)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), &service.SendMessageInput{
		Code:     code,
		PlayerID: playerID,
		Body:     req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.NewMessageResponse(msg))
}

// List godoc
// @Summary List messages
// @Description List the room's messages in log order; pass after_seq to fetch only new ones
// @Tags messages
// @Produce json
// @Param code path string true "Room code"
// @Param after_seq query int false "Return only messages with seq greater than this"
// @Success 200 {object} response.Response{data=response.MessageListResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{code}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	code := c.Param("code")

	v := utils.NewValidator()
	v.ValidateRoomCode("code", code)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	var afterSeq int64
	if raw := c.Query("after_seq"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			response.BadRequest(c, "after_seq must be a non-negative integer")
			return
		}
		afterSeq = parsed
	}

	msgs, err := h.messageService.List(c.Request.Context(), code, afterSeq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewMessageListResponse(msgs, afterSeq))
}

// SetTyping godoc
// @Summary Set typing state
// @Description Record a typing heartbeat or an explicit stop for the caller
// @Tags messages
// @Accept json
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Param request body request.TypingRequest true "Typing flag"
// @Success 204 "No Content"
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/rooms/{code}/typing [post]
func (h *MessageHandler) SetTyping(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	var req request.TypingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "malformed request body")
		return
	}

	if err := h.presenceService.SetTyping(c.Request.Context(), code, playerID, *req.Typing); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Typing godoc
// @Summary Get typing indicator
// @Description List nicknames of players typing right now, excluding the caller
// @Tags messages
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Response{data=response.TypingResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{code}/typing [get]
func (h *MessageHandler) Typing(c *gin.Context) {
	code := c.Param("code")

	v := utils.NewValidator()
	v.ValidateRoomCode("code", code)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	// Spectators see everyone; players do not see themselves.
	excludeID := middleware.GetPlayerID(c)

	nicknames, err := h.presenceService.Typing(c.Request.Context(), code, excludeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &response.TypingResponse{Typing: nicknames})
}
