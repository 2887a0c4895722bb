package dto

// Envelope wraps every JSON response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure wraps an error message.
func Failure(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}
