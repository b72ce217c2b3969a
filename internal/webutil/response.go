// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/functionasasin/projects-api/internal/model"

	"github.com/go-playground/validator/v10"
)

const genericServerErrorMessage = "An unexpected error occurred. Please try again later."

// HandleError はエラーを解釈し、エラー用エンベロープで返します。
// AppError 以外の予期せぬエラーはログにだけ詳細を出し、クライアントには汎用メッセージを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var appErr *model.AppError
	var errResp model.ErrorResponse
	if errors.As(err, &appErr) {
		errResp = model.ErrorResponse{
			Status:  model.StatusError,
			Error:   appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	} else {
		logger.Error("Unhandled error", "error", err)
		statusCode = http.StatusInternalServerError
		errResp = model.ErrorResponse{
			Status:  model.StatusError,
			Error:   model.CodeServerError,
			Message: genericServerErrorMessage,
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(appErr, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(appErr, model.ErrInvalidID), errors.Is(appErr, model.ErrInvalidEnhancement):
		return http.StatusBadRequest
	case errors.Is(appErr, model.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(appErr, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(appErr, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondSuccess は成功用エンベロープで返します
func RespondSuccess(w http.ResponseWriter, code int, message string, data interface{}, logger *slog.Logger) {
	RespondWithJSON(w, code, model.SuccessResponse{
		Status:  model.StatusSuccess,
		Message: message,
		Data:    data,
	}, logger)
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"Error","error":"SERVER_ERROR","message":"` + genericServerErrorMessage + `","details":null}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// NewValidationErrorResponse は validator のエラーをフィールド単位の詳細付き AppError に変換します
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	details := make([]model.FieldError, 0, len(errs))
	for _, fe := range errs {
		details = append(details, model.FieldError{
			Field:   fieldPath(fe),
			Message: fe.Translate(Trans),
		})
	}
	return model.NewAppError(model.CodeValidationError, "Validation error", details, model.ErrInvalidInput)
}

// NewInvalidBodyError はJSONとして読めないリクエストボディ用のエラーです
func NewInvalidBodyError(err error) *model.AppError {
	return model.NewAppError(model.CodeValidationError, "Request body is not valid JSON",
		[]model.FieldError{{Field: "body", Message: err.Error()}}, model.ErrInvalidInput)
}
