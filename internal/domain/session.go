package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one entry of a session's refinement transcript.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session tracks one in-progress try-on conversation. The id is the sole
// external handle. UserPhotoRef and OriginalOutfitRef are fixed at
// creation; the current description and result are replaced wholesale on
// each refinement and History is append-only.
type Session struct {
	ID                 string
	UserPhotoRef       string
	OriginalOutfitRef  string
	CurrentDescription OutfitDescription
	CurrentResultRef   string
	History            []ChatTurn
	CreatedAt          time.Time
}
