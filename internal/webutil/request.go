package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// リクエストボディの上限 (1MB)
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディを dst にデコードし、バリデーションまで行います。
// 失敗時は model.ErrInvalidInput をラップした *model.AppError を返します。
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return NewInvalidBodyError(errors.New("request body is empty"))
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return NewInvalidBodyError(errors.New("request body is empty"))
		}
		return NewInvalidBodyError(err)
	}
	if decoder.More() {
		return NewInvalidBodyError(fmt.Errorf("request body must contain a single JSON object"))
	}
	return ValidateStruct(dst)
}
