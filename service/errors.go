package service

import "errors"

// ErrorKind 业务错误类别，由 handler 层决定对外的呈现方式
type ErrorKind int

const (
	KindUnauthorized ErrorKind = iota + 1
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindInternal
)

// Error 统一业务错误
// Field 仅对表单校验类错误有意义，标记出错的表单字段
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error // 底层错误，只进日志不对外
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUnauthorized 未认证
func ErrUnauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Field: "general", Message: "Unauthorized"}
}

// ValidationErr 输入校验失败
func ValidationErr(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFoundErr 资源不存在
func NotFoundErr(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// ForbiddenErr 越权操作
func ForbiddenErr(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// ConflictErr 唯一性冲突
func ConflictErr(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// InternalErr 意外的存储层错误
func InternalErr(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// AsError 提取业务错误
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
