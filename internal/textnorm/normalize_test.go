package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \t　 ", want: ""},
		{name: "brackets and episode", in: "【コント】面白すぎて生徒人気No.1の先生", want: "コント面白すぎて生徒人気 の先生"},
		{name: "bracket chars only", in: "サンデージャポン【公式】", want: "サンデージャポン公式"},
		{name: "fullwidth folded", in: "ＡＢＣ　ｄｅｆ", want: "abc def"},
		{name: "hashtag", in: "漫才 #お笑い #芸人 最新", want: "漫才 最新"},
		{name: "episode vol", in: "ラジオ vol.12 ゲスト", want: "ラジオ ゲスト"},
		{name: "episode spaced hash", in: "第 # 3 回", want: "第 回"},
		{name: "square tag", in: "[公式] 漫才[HD]", want: "漫才"},
		{name: "keep other brackets", in: "「ネタ」(フル)『新作』", want: "「ネタ」(フル)『新作』"},
		{name: "angle brackets removed", in: "<速報>ネタ", want: "速報ネタ"},
		{name: "emoji", in: "爆笑😂😂ネタ🎉", want: "爆笑 ネタ"},
		{name: "repeated symbols", in: "wwwww最高！！！？？", want: "w最高!?"},
		{name: "repeated wave", in: "どうも〜〜〜", want: "どうも〜"},
		{name: "mixed run untouched", in: "!?!?", want: "!?!?"},
		{name: "symbol range stripped", in: "★★★♪♪", want: ""},
		{name: "long vowel kept", in: "すげーーー", want: "すげーーー"},
		{name: "vertical tab is whitespace", in: "a\x0bb", want: "a b"},
		{name: "full case mapping", in: "İstanbul", want: "i\u0307stanbul"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"【コント】面白すぎて生徒人気No.1の先生",
		"サンデージャポン【公式】",
		"vol【】1 特番",
		"vol 😀 1",
		"no<>.5",
		"#【】3",
		"[[a]]",
		"w😂w😂w",
		"ｗｗｗ　！！",
		"ＶＯＬ．３【生配信】#告知",
		"  漫才\u0085",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
