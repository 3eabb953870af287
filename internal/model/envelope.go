package model

// Envelope is the JSON wrapper used by every API response:
// {success, data|error}, with an optional count on list responses.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKList wraps a list and its length in a successful envelope.
func OKList(data interface{}, count int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count}
}

// Fail wraps an error message in a failed envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
