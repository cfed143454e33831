package models

// APIResponse is the envelope every endpoint answers with.
// Status is "success" or "error"; Errors is only populated on
// validation failures (field name -> list of messages).
type APIResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// LoginResponse is the successful-login payload. The token fields sit at
// the top level next to the envelope fields, matching the public API shape.
type LoginResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        *Usuario `json:"user"`
}
