package model

import (
	"strings"
	"time"
)

// PayloadKind classifies a chat message body.
type PayloadKind string

const (
	PayloadText  PayloadKind = "text"
	PayloadGIF   PayloadKind = "gif"
	PayloadImage PayloadKind = "image"
)

const (
	gifPrefix   = "[gif:"
	imagePrefix = "[image:"
)

// Message is one entry in a room's append-only chat log. System
// messages carry no nickname. The body is either plain text or a
// tagged media form, [gif:<url>] or [image:<data-url>], which readers
// must branch on.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Seq       int64     `json:"seq,omitempty"`
	RoomID    string    `json:"room_id"`
	Nickname  string    `json:"nickname,omitempty"`
	System    bool      `json:"system,omitempty"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload splits the body into its kind and content. For media
// messages the content is the embedded URL or data URL.
func (m *Message) Payload() (PayloadKind, string) {
	switch {
	case strings.HasPrefix(m.Body, gifPrefix) && strings.HasSuffix(m.Body, "]"):
		return PayloadGIF, m.Body[len(gifPrefix) : len(m.Body)-1]
	case strings.HasPrefix(m.Body, imagePrefix) && strings.HasSuffix(m.Body, "]"):
		return PayloadImage, m.Body[len(imagePrefix) : len(m.Body)-1]
	}
	return PayloadText, m.Body
}

// MediaBody reports whether body carries one of the tagged media
// forms rather than plain text.
func MediaBody(body string) bool {
	return (strings.HasPrefix(body, gifPrefix) || strings.HasPrefix(body, imagePrefix)) &&
		strings.HasSuffix(body, "]")
}

// GIFBody wraps a GIF URL in the tagged wire form.
func GIFBody(url string) string {
	return gifPrefix + url + "]"
}

// ImageBody wraps an image data URL in the tagged wire form.
func ImageBody(dataURL string) string {
	return imagePrefix + dataURL + "]"
}
