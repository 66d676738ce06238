// internal/service/generator.go
package service

import (
	"context"
)

// TextGenerator は外部の文章生成プロバイダを抽象化するインターフェースです。
// チャットサービスには起動時に具象実装を注入します (テストではフェイクに差し替え)。
type TextGenerator interface {
	// Generate はシステム指示とプロンプトからテキストを同期的に生成します。
	// リトライは行いません。失敗はそのまま呼び出し元に返します。
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}
