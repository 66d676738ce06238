// internal/handlers/main_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

// --- テストヘルパー関数 (パッケージ内で共有) ---
// ハンドラテストはサービス層をモックするため、DBのセットアップは不要です。
// 各テストファイルでモックハンドラを登録したローカルルーターを使います。

// createRequest はテスト用のHTTPリクエストオブジェクトを作成します。
// userID が指定されていれば X-User-ID ヘッダーを追加します
// (DevUserContextMiddleware がこのヘッダーからユーザーを特定します)。
func createRequest(t *testing.T, method, url string, body interface{}, userID *uuid.UUID) *http.Request {
	t.Helper()
	var reqBodyBytes []byte
	var err error

	if body != nil {
		switch b := body.(type) {
		case string:
			reqBodyBytes = []byte(b)
		case []byte:
			reqBodyBytes = b
		default:
			reqBodyBytes, err = json.Marshal(body)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}
		}
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBodyBytes))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	return req
}
