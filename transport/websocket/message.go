package websocket

import "encoding/json"

const (
	actionState = "game:state"
	actionTurn  = "game:turn"
	actionReset = "game:reset"
	actionLines = "game:lines"
)

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Response struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type turnPayload struct {
	Mark   string `json:"mark"`
	Column *int   `json:"column"`
}

type linesPayload struct {
	N    int    `json:"n"`
	Mark string `json:"mark"`
}

type linesResult struct {
	N     int    `json:"n"`
	Mark  string `json:"mark"`
	Count int    `json:"count"`
}
