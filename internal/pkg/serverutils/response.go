package serverutils

type Response[T any] struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    T                 `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func CreatedResponse[T any](message string, data T) Response[T] {
	res := SuccessResponse(message, data)
	res.Code = 201
	return res
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

func ValidationErrorResponse(message string, errs map[string]string) Response[any] {
	res := ErrorResponse(400, message)
	res.Errors = errs
	return res
}
