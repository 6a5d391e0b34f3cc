package util

import "errors"

// ErrorKind CRM错误类别
type ErrorKind string

const (
	KindValidation     ErrorKind = "Validation"
	KindAuthentication ErrorKind = "Authentication"
	KindAuthorization  ErrorKind = "Authorization"
	KindFile           ErrorKind = "File"
	KindDatabase       ErrorKind = "Database"
	KindClient         ErrorKind = "Client"
	KindTutor          ErrorKind = "Tutor"
	KindSession        ErrorKind = "Session"
	KindAIModel        ErrorKind = "AIModel"
	KindMaterial       ErrorKind = "Material"
)

// AppError 带类别的业务错误。未找到/空结果不走错误，直接返回 false 或空集合。
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return string(e.Kind) + " Error: " + e.Message
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NewValidationError(message string) *AppError {
	return NewError(KindValidation, message)
}

func NewAuthenticationError(message string) *AppError {
	return NewError(KindAuthentication, message)
}

func NewAuthorizationError(message string) *AppError {
	return NewError(KindAuthorization, message)
}

func NewFileError(message string) *AppError {
	return NewError(KindFile, message)
}

// IsKind 判断 err 是否为指定类别的 AppError
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsValidationError(err error) bool {
	return IsKind(err, KindValidation)
}
