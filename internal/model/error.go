// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidID          = errors.New("invalid id format")
	ErrInvalidEnhancement = errors.New("invalid enhancement request")
	ErrGenerationFailed   = errors.New("enhancement generation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrLockTimeout        = errors.New("enhancement lock wait timed out")
)

// エラーコード (レスポンスの "error" フィールドに入る値)
const (
	CodeResourceNotFound   = "ResourceNotFound"
	CodeInvalidID          = "InvalidID"
	CodeValidationError    = "ValidationError"
	CodeInvalidEnhancement = "INVALID_ENHANCEMENT_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeServerError        = "SERVER_ERROR"
)

// AppError はクライアントへ返すエラーコード・メッセージと、
// 判定用のセンチネルエラーをまとめたものです。
type AppError struct {
	Code    string      // "ResourceNotFound" などのエラーコード
	Message string      // クライアント向けメッセージ
	Details interface{} // バリデーションエラーの詳細など (任意)
	Err     error       // errors.Is で判定するための元エラー
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, details interface{}, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Err:     err,
	}
}

// NewNotFoundError は "<resource> not found" 形式の NotFound エラーを作ります。
// message が空ならリソース名からメッセージを組み立てます。
func NewNotFoundError(resource, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return NewAppError(CodeResourceNotFound, message, nil, ErrNotFound)
}

func NewInvalidIDError() *AppError {
	return NewAppError(CodeInvalidID, "Invalid ID format", nil, ErrInvalidID)
}

// NewGenerationFailedError はクライアントには NotFound として見せ、
// errors.Is では ErrGenerationFailed とも判定できるエラーを作ります。
func NewGenerationFailedError() *AppError {
	return NewAppError(CodeResourceNotFound, "Unable to generate an enhanced version of this project",
		nil, errors.Join(ErrNotFound, ErrGenerationFailed))
}

// レスポンスエンベロープ
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)
