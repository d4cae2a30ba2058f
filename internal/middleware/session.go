package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/dto/response"
	"github.com/Rohit1301k/dareroom/internal/session"
)

const (
	SessionTokenHeader = "X-Session-Token"
	SessionKey         = "session"
	PlayerIDKey        = "player_id"
	RoomIDKey          = "room_id"
)

// RequireSession resolves the X-Session-Token header into a session
// and stores it on the context. Requests without a valid token are
// rejected before reaching the handler.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			response.Unauthorized(c, "missing session token")
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				response.Unauthorized(c, "session expired or unknown")
			} else {
				response.Unauthorized(c, "could not resolve session")
			}
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Set(PlayerIDKey, sess.PlayerID)
		c.Set(RoomIDKey, sess.RoomID)

		c.Next()
	}
}

// OptionalSession resolves the session if a token is present but never
// rejects the request. Handlers that serve both spectators and players
// use it.
func OptionalSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(SessionKey, sess)
		c.Set(PlayerIDKey, sess.PlayerID)
		c.Set(RoomIDKey, sess.RoomID)

		c.Next()
	}
}

// GetSession retrieves the resolved session from context
func GetSession(c *gin.Context) *session.Session {
	sess, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	return sess.(*session.Session)
}

// GetPlayerID retrieves the caller's player ID from context
func GetPlayerID(c *gin.Context) string {
	playerID, exists := c.Get(PlayerIDKey)
	if !exists {
		return ""
	}
	return playerID.(string)
}

// GetRoomID retrieves the caller's room code from context
func GetRoomID(c *gin.Context) string {
	roomID, exists := c.Get(RoomIDKey)
	if !exists {
		return ""
	}
	return roomID.(string)
}

// HasSession checks if the caller presented a valid session
func HasSession(c *gin.Context) bool {
	_, exists := c.Get(SessionKey)
	return exists
}
