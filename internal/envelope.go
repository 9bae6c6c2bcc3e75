package internal

// Envelope is the JSON body of every terminal API response.
type Envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OK builds a successful envelope.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Fail builds a failed envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
