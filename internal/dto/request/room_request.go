package request

// CreateRoomRequest represents a room creation request. The creator
// becomes the host.
type CreateRoomRequest struct {
	Nickname   string   `json:"nickname" binding:"required,min=1,max=30"`
	Type       string   `json:"type" binding:"required,oneof=partner friends group"`
	Categories []string `json:"categories" binding:"required,min=1"`
}

// JoinRoomRequest represents a join request for an existing room. The
// room code comes from the URL path.
type JoinRoomRequest struct {
	Nickname string `json:"nickname" binding:"required,min=1,max=30"`
}
