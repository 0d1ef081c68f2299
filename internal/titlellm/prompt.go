package titlellm

import (
	"fmt"
	"strings"
)

// Example is one few-shot pair embedded in the system prompt.
type Example struct {
	Title  string
	Comedy bool
}

// FewShot is the fixed example set shown to the model.
var FewShot = []Example{
	{Title: "【コント】面白すぎて生徒人気No.1の先生", Comedy: true},
	{Title: "【漫才】ボケが止まらない結婚式のスピーチ", Comedy: true},
	{Title: "ショートコント「コンビニの新人」", Comedy: true},
	{Title: "一発ギャグ100連発", Comedy: true},
	{Title: "サンデージャポン【公式】", Comedy: false},
	{Title: "【生配信】メンバー全員で雑談します", Comedy: false},
	{Title: "単独ライブ開催のお知らせ", Comedy: false},
	{Title: "【切り抜き】ラジオで語った下積み時代", Comedy: false},
	{Title: "休日vlog 相方とキャンプ", Comedy: false},
}

const promptRules = `あなたは動画タイトルの分類器です。タイトルが「お笑いのネタ（コント・漫才・漫談・ショートコント・一発ギャグなど、芸そのものを披露する動画）」かどうかを判定してください。

判定ルール:
- ネタそのものを披露している動画は true。
- 告知、お知らせ、生配信、ラジオ、切り抜き、vlog、インタビュー、番組公式チャンネルの宣伝などは false。
- 判断に迷う場合は false。

出力形式:
- JSON オブジェクトを1つだけ返してください。キーは "label" のみです。
- 値は文字列 "true" または "false" のどちらかです。
- 説明文やその他のキーは含めないでください。`

// SystemPrompt returns the instruction text including the few-shot block.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString(promptRules)
	b.WriteString("\n\n例:\n")
	for _, ex := range FewShot {
		fmt.Fprintf(&b, "タイトル: %s\n出力: {\"label\":\"%t\"}\n", ex.Title, ex.Comedy)
	}
	return strings.TrimRight(b.String(), "\n")
}
