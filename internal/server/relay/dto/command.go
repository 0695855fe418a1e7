package dto

// CommandRequest is the body of POST /commands/{name}.
type CommandRequest struct {
	Args []string `json:"args"`
	// Room receives the reply; empty means reply only in the response body.
	Room string `json:"room" validate:"omitempty,max=256"`
	// Broadcast sends the reply to every configured room instead of Room.
	Broadcast bool `json:"broadcast"`
	// Stream sends one chat message per reply line instead of a single joined message.
	Stream bool   `json:"stream"`
	Kind   string `json:"kind" validate:"omitempty,oneof=groupchat chat" example:"groupchat"`
}

type CommandResponse struct {
	Command     string   `json:"command" example:"clients"`
	Lines       []string `json:"lines"`
	Rooms       []string `json:"rooms,omitempty"`
	FailedRooms []string `json:"failed_rooms,omitempty"`
}

type CommandInfo struct {
	Name        string `json:"name" example:"client"`
	Usage       string `json:"usage" example:"client <name>"`
	Description string `json:"description" example:"Show the details of a client"`
}
