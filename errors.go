package main

import (
	"errors"
	"fmt"
)

// ErrCode 错误分类
type ErrCode string

// Error codes. Config and decode failures abort the whole run before any
// tile is written; IO failures abort only the layer being rendered.
const (
	ErrCodeConfig ErrCode = "CONFIG"
	ErrCodeDecode ErrCode = "DECODE"
	ErrCodeIO     ErrCode = "IO"
)

// Error is a coded error naming the offending layer or file.
type Error struct {
	Code    ErrCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ConfigError 配置错误
func ConfigError(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeConfig, Message: fmt.Sprintf(format, args...)}
}

// DecodeError 资源解码错误
func DecodeError(cause error, format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeDecode, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IOError 读写错误
func IOError(cause error, format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeIO, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func errCode(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsConfigError(err error) bool { return errCode(err) == ErrCodeConfig }

func IsDecodeError(err error) bool { return errCode(err) == ErrCodeDecode }

func IsIOError(err error) bool { return errCode(err) == ErrCodeIO }
