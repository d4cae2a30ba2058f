package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/dto/request"
	"github.com/Rohit1301k/dareroom/internal/dto/response"
	"github.com/Rohit1301k/dareroom/internal/middleware"
	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/pkg/utils"
	"github.com/Rohit1301k/dareroom/internal/service"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// State godoc
// @Summary Get game state
// @Description Get the room's derived game state; polling clients call this every two seconds
// @Tags game
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Response{data=response.GameStateResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{code}/state [get]
func (h *GameHandler) State(c *gin.Context) {
	code := c.Param("code")

	v := utils.NewValidator()
	v.ValidateRoomCode("code", code)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	state, err := h.gameService.State(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewGameStateResponse(state))
}

// Start godoc
// @Summary Start the game
// @Description Start the game; host only, requires at least two active players
// @Tags game
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Success 200 {object} response.Response{data=response.TurnResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{code}/start [post]
func (h *GameHandler) Start(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	turn, err := h.gameService.Start(c.Request.Context(), code, playerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewTurnResponse(turn))
}

// Choose godoc
// @Summary Choose truth or dare
// @Description Record the current player's choice and draw a question
// @Tags game
// @Accept json
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Param request body request.ChooseRequest true "Choice"
// @Success 200 {object} response.Response{data=response.TurnResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{code}/choose [post]
func (h *GameHandler) Choose(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	var req request.ChooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "type must be truth or dare")
		return
	}

	turn, err := h.gameService.Choose(c.Request.Context(), code, playerID, model.TurnType(req.Type))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewTurnResponse(turn))
}

// ChangeQuestion godoc
// @Summary Change the question
// @Description Redraw a question of the same type for the current turn
// @Tags game
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Success 200 {object} response.Response{data=response.TurnResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{code}/question/change [post]
func (h *GameHandler) ChangeQuestion(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	turn, err := h.gameService.ChangeQuestion(c.Request.Context(), code, playerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewTurnResponse(turn))
}

// Complete godoc
// @Summary Complete the turn
// @Description Finish the current turn and pass play to the next player
// @Tags game
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Success 200 {object} response.Response{data=response.TurnResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{code}/complete [post]
func (h *GameHandler) Complete(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	turn, err := h.gameService.Complete(c.Request.Context(), code, playerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewTurnResponse(turn))
}

// End godoc
// @Summary End the game
// @Description Close the room permanently; host only
// @Tags game
// @Produce json
// @Security SessionToken
// @Param code path string true "Room code"
// @Success 204 "No Content"
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/rooms/{code}/end [post]
func (h *GameHandler) End(c *gin.Context) {
	code := c.Param("code")
	playerID := middleware.GetPlayerID(c)

	if err := requireSameRoom(c, code); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.gameService.End(c.Request.Context(), code, playerID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
