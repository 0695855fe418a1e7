package wrapper

// JSONResult is the envelope every relay endpoint answers with. Code is the HTTP status
// and is not serialized.
type JSONResult struct {
	Code    int         `json:"-"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func ResponseSuccess(httpCode int, data interface{}) JSONResult {
	return JSONResult{Code: httpCode, Success: true, Message: "Success", Data: data}
}

// ResponseFailed reports a failure. httpCode may still be 200, for example when a
// webhook event is declined.
func ResponseFailed(httpCode int, message string, data interface{}) JSONResult {
	return JSONResult{Code: httpCode, Success: false, Message: message, Data: data}
}
