package serverutils

import "mailreply-be/internal/pkg/apperror"

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

// ErrorBody is the JSON written for every failed request.
type ErrorBody struct {
	Error   string                `json:"error"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

func ErrorResponse(message string, details ...apperror.FieldError) ErrorBody {
	return ErrorBody{Error: message, Details: details}
}
