package models

// Messages returned to the forms.
const (
	MsgNoMatch = "No matching credentials found."
)

// ActionResponse is the JSON body returned by form actions.
type ActionResponse struct {
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	URL     string `json:"url,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Success *bool  `json:"success,omitempty"`
}

// OneClickSent reports a 1-click SMS link that was issued.
func OneClickSent(url, phone string) ActionResponse {
	ok := true
	return ActionResponse{URL: url, Phone: phone, Success: &ok}
}

// Reset re-arms the 1-click form.
func Reset() ActionResponse {
	ok := false
	return ActionResponse{Success: &ok}
}

// NoMatch is the standard flow's answer when the wallet holds nothing usable.
func NoMatch() ActionResponse {
	return ActionResponse{Error: MsgNoMatch}
}
