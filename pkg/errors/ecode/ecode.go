package ecode

// 业务错误码，0表示成功
const (
	Success = 0

	Unknown        = 10001
	ValidateErr    = 10002
	NotFoundErr    = 10003
	RequireAuthErr = 10004
	TooManyErr     = 10005
)

var messages = map[int]string{
	Success:        "ok",
	Unknown:        "internal error",
	ValidateErr:    "invalid request",
	NotFoundErr:    "not found",
	RequireAuthErr: "unauthorized",
	TooManyErr:     "too many requests",
}

// Text 返回错误码的默认文案
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
