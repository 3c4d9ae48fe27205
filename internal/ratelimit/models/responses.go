package models

// RateLimitExceededResponse is the JSON body of a 429.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int    `json:"retry_after"`
}
