package constants

// Standard Response Field Keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
	ResponseFieldData    = "data"
	ResponseFieldToken   = "token"
)

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil && details != "" {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}

func BuildDataResponse(message string, data any) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldData:    data,
	}
}
