package errors

import (
	"errors"
	"fmt"

	"signalflow/pkg/errors/ecode"
)

// 携带业务错误码的error，供response统一解码
type withCode struct {
	code int
	msg  string
	err  error
}

func (w *withCode) Error() string {
	if w.err != nil {
		return fmt.Sprintf("%s: %v", w.msg, w.err)
	}
	return w.msg
}

func (w *withCode) Unwrap() error {
	return w.err
}

func New(msg string) error {
	return errors.New(msg)
}

// WithCode 创建一个带错误码的error
func WithCode(code int, msg string) error {
	if msg == "" {
		msg = ecode.Text(code)
	}
	return &withCode{code: code, msg: msg}
}

// Wrap 包装底层error并附加错误码
func Wrap(err error, code int, msg string) error {
	if msg == "" {
		msg = ecode.Text(code)
	}
	return &withCode{code: code, msg: msg, err: err}
}

// DecodeErr 解码error为 (code, message)，nil表示成功
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var w *withCode
	if errors.As(err, &w) {
		return w.code, w.msg
	}
	return ecode.Unknown, err.Error()
}
