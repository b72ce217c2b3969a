package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/functionasasin/projects-api/internal/model"
	"github.com/functionasasin/projects-api/internal/webutil"
)

// APIKeyHeader は書き込み系エンドポイントで必須の認証ヘッダーです
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware は X-API-Key ヘッダーを設定値と照合するミドルウェアです。
// ヘッダーが無ければ 401、一致しなければ 403。
// expected が空の場合はどのキーも一致しないため、すべて 403 になります。
func APIKeyMiddleware(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				logger.Warn("API key auth failed: header missing", "path", r.URL.Path)
				appErr := model.NewAppError(model.CodeUnauthorized, "API Key header not found", nil, model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
				logger.Warn("API key auth failed: key mismatch", "path", r.URL.Path)
				appErr := model.NewAppError(model.CodeForbidden, "Invalid API Key", nil, model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
