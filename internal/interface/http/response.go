package http

import (
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse はAPI共通のレスポンス形式
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  any      `json:"errors"`
	Meta    MetaData `json:"meta"`
}

// MetaData はレスポンスのメタ情報
type MetaData struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// genericErrorMessage はクライアントに返す固定の内部エラーメッセージ
// 内部例外の詳細はログにのみ出力し、クライアントへは漏らさない
const genericErrorMessage = "internal server error"

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(200, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    metaFrom(c),
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Meta:    metaFrom(c),
	})
}

func metaFrom(c *gin.Context) MetaData {
	return MetaData{
		RequestID: c.GetString(requestIDKey),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
