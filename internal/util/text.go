package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var (
	reCircled   = regexp.MustCompile(`[①-⑳]`)
	reSpaces    = regexp.MustCompile(`\s+`)
	reEraSingle = regexp.MustCompile(`(明治|大正|昭和|平成|令和|[MTSHR])(\d{1,2}|元)年`)
	reEraRange  = regexp.MustCompile(`(明治|大正|昭和|平成|令和|[MTSHR])(\d{1,2}|元)[-~〜～](\d{1,2}|元)年`)
)

// eraEpochs maps an era token to the Gregorian year of that era's year 1.
var eraEpochs = map[string]int{
	"明治": 1868, "M": 1868,
	"大正": 1912, "T": 1912,
	"昭和": 1926, "S": 1926,
	"平成": 1989, "H": 1989,
	"令和": 2019, "R": 2019,
}

var circledDigits = map[rune]string{
	'①': "1", '②': "2", '③': "3", '④': "4", '⑤': "5",
	'⑥': "6", '⑦': "7", '⑧': "8", '⑨': "9", '⑩': "10",
	'⑪': "11", '⑫': "12", '⑬': "13", '⑭': "14", '⑮': "15",
	'⑯': "16", '⑰': "17", '⑱': "18", '⑲': "19", '⑳': "20",
}

// dashRunes are unified to an ASCII hyphen. The katakana long-vowel mark
// (ー) is deliberately absent: it is a phoneme marker, not a dash.
var dashRunes = []string{
	"‐", "‑", "‒", "–", "—", "―", "−",
	"─", "━", "～", "〜",
}

// hyphenToLongVowel corrects loanwords typed with an ASCII hyphen where the
// long-vowel mark belongs. Applied longest entry first so that a shorter
// entry never corrupts a longer match. Must run before dash unification,
// because unification erases the hyphen signal these entries key on.
var hyphenToLongVowel = map[string]string{
	"コミュニケ-ション": "コミュニケーション",
	"フォロ-アップ":   "フォローアップ",
	"イノベ-ション":   "イノベーション",
	"テクノロジ-":    "テクノロジー",
	"エネルギ-":     "エネルギー",
	"マレ-シア":     "マレーシア",
	"セ-フティ":     "セーフティ",
	"サ-ビス":      "サービス",
	"サポ-ト":      "サポート",
	"グル-プ":      "グループ",
	"スポ-ツ":      "スポーツ",
	"センタ-":      "センター",
	"ユ-ザ-":      "ユーザー",
	"メ-カ-":      "メーカー",
	"リ-ダ-":      "リーダー",
	"オ-プン":      "オープン",
	"デ-タ":       "データ",
	"ベ-ス":       "ベース",
	"カ-ド":       "カード",
	"チ-ム":       "チーム",
	"ニ-ズ":       "ニーズ",
	"ル-タ":       "ルータ",
}

var hyphenEntries = func() []string {
	keys := make([]string, 0, len(hyphenToLongVowel))
	for k := range hyphenToLongVowel {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := []rune(keys[i]), []rune(keys[j])
		if len(ri) != len(rj) {
			return len(ri) > len(rj)
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// NormalizeText canonicalizes one cell value. Total (any string in, string
// out) and idempotent. The step order is load-bearing: see the comments on
// hyphenToLongVowel and dashRunes.
func NormalizeText(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	text = ConvertCircledNumbers(text)
	text = foldLexical(text)
	text = norm.NFKC.String(text)
	text = ConvertEraYears(text)
	text = FixHyphenLongVowel(text)
	text = unifyDashes(text)
	text = stripTrailingLongVowel(text)
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeHeader only removes control whitespace. Header tokens are matched
// against fixed patterns, so they are never era-converted or dash-unified.
func NormalizeHeader(header string) string {
	repl := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
	header = repl.Replace(header)
	header = reSpaces.ReplaceAllString(header, " ")
	return strings.TrimSpace(header)
}

// ConvertCircledNumbers maps circled-number glyphs to plain digits.
func ConvertCircledNumbers(text string) string {
	return reCircled.ReplaceAllStringFunc(text, func(s string) string {
		if d, ok := circledDigits[[]rune(s)[0]]; ok {
			return d
		}
		return s
	})
}

// foldLexical folds half-width katakana and full-width ASCII variants while
// preserving the long-vowel mark.
func foldLexical(text string) string {
	return width.Fold.String(text)
}

// ConvertEraYears rewrites era-based year expressions to Gregorian years.
// Ranges are handled before single years so that 平成25〜28年 does not decay
// into a half-converted form. Non-matching text passes through unchanged.
func ConvertEraYears(text string) string {
	text = reEraRange.ReplaceAllStringFunc(text, func(s string) string {
		m := reEraRange.FindStringSubmatch(s)
		epoch, ok := eraEpochs[m[1]]
		if !ok {
			return s
		}
		start, ok1 := eraYearNumber(m[2])
		end, ok2 := eraYearNumber(m[3])
		if !ok1 || !ok2 {
			return s
		}
		return strconv.Itoa(epoch+start-1) + "〜" + strconv.Itoa(epoch+end-1) + "年"
	})
	return reEraSingle.ReplaceAllStringFunc(text, func(s string) string {
		m := reEraSingle.FindStringSubmatch(s)
		epoch, ok := eraEpochs[m[1]]
		if !ok {
			return s
		}
		year, ok := eraYearNumber(m[2])
		if !ok {
			return s
		}
		return strconv.Itoa(epoch+year-1) + "年"
	})
}

func eraYearNumber(token string) (int, bool) {
	if token == "元" {
		return 1, true
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FixHyphenLongVowel restores the long-vowel mark in known loanwords that
// raw data typed with a hyphen (コミュニケ-ション → コミュニケーション).
func FixHyphenLongVowel(text string) string {
	if !strings.Contains(text, "-") {
		return text
	}
	for _, hyphenated := range hyphenEntries {
		if strings.Contains(text, hyphenated) {
			text = strings.ReplaceAll(text, hyphenated, hyphenToLongVowel[hyphenated])
		}
	}
	return text
}

func unifyDashes(text string) string {
	for _, d := range dashRunes {
		text = strings.ReplaceAll(text, d, "-")
	}
	return text
}

// stripTrailingLongVowel drops a long-vowel mark that follows a katakana run
// but is not itself followed by further katakana (サービスー → サービス), a
// scanning artifact in older releases.
func stripTrailingLongVowel(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		if r == 'ー' && i > 0 && isKatakana(runes[i-1]) {
			if i == len(runes)-1 || (!isKatakana(runes[i+1]) && runes[i+1] != 'ー') {
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

func isKatakana(r rune) bool {
	return r >= 'ァ' && r <= 'ヴ'
}

func StringPtr(s string) *string { return &s }

func FloatPtr(f float64) *float64 { return &f }
