package util

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", "   "},
		{"①番目の事業", "1番目の事業"},
		{"平成25年開始", "2013年開始"},
		{"令和元年開始", "2019年開始"},
		{"令和3年度", "2021年度"},
		{"R3年実施", "2021年実施"},
		{"平成25〜28年", "2013-2016年"},
		{"リスクコミュニケ-ション", "リスクコミュニケーション"},
		{"全角　スペース", "全角 スペース"},
		{"長い―ダッシュ", "長い-ダッシュ"},
		{"データサービスー", "データサービス"},
		{"センター", "センタ"},
		{"コミュニケーション", "コミュニケーション"},
		{"ＡＢＣ１２３", "ABC123"},
	}
	for _, c := range cases {
		if got := NormalizeText(c.in); got != c.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"平成25〜28年", "リスクコミュニケ-ション", "①事業　概要", "データサービスー",
		"令和元年10月開始", "ＴＥＳＴ－０１",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestConvertEraYears(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"平成25年", "2013年"},
		{"令和元年", "2019年"},
		{"令和2年", "2020年"},
		{"昭和60年", "1985年"},
		{"H25年", "2013年"},
		{"S60年", "1985年"},
		{"平成25〜28年", "2013〜2016年"},
		{"令和元~3年", "2019〜2021年"},
		{"2020年", "2020年"},
		{"平成年", "平成年"},
	}
	for _, c := range cases {
		if got := ConvertEraYears(c.in); got != c.want {
			t.Errorf("ConvertEraYears(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFixHyphenLongVowelRunsBeforeDashUnification(t *testing.T) {
	// The dictionary keys on an ASCII hyphen. If unification ran first the
	// hyphen would survive as-is and the loanword would stay corrupted.
	got := NormalizeText("フォロ-アップ調査")
	if got != "フォローアップ調査" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"事業名\n（正式名称）", "事業名 （正式名称）"},
		{"  担当\t部局庁  ", "担当 部局庁"},
		{"平成25年度", "平成25年度"}, // headers keep era expressions
	}
	for _, c := range cases {
		if got := NormalizeHeader(c.in); got != c.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
