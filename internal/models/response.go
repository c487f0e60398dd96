package models

// Response is the envelope returned by every endpoint. Code mirrors the
// HTTP status; Data is null when there is no payload.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}
