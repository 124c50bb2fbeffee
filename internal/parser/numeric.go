package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	decimalPattern  = regexp.MustCompile(`\d[.,]\d`)
	digitRunPattern = regexp.MustCompile(`-?\d+`)

	// NFD, drop combining marks, NFC: "zéro" -> "zero", "två" -> "tva".
	foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// numberWords maps accent-folded number words for 0-3 to their value.
var numberWords = map[string]int{
	// en
	"zero": 0, "none": 0, "one": 1, "two": 2, "three": 3,
	// de
	"null": 0, "kein": 0, "keine": 0, "ein": 1, "eine": 1, "eins": 1, "zwei": 2, "drei": 3,
	// fr
	"aucun": 0, "aucune": 0, "un": 1, "une": 1, "deux": 2, "trois": 3,
	// fi
	"nolla": 0, "yksi": 1, "kaksi": 2, "kolme": 3,
	// sv
	"noll": 0, "en": 1, "ett": 1, "tva": 2, "tre": 3,
	// it
	"nessuno": 0, "uno": 1, "una": 1, "due": 2,
	// es
	"cero": 0, "ninguno": 0, "dos": 2, "tres": 3,
}

func fold(token string) string {
	folded, _, err := transform.String(foldAccents, token)
	if err != nil {
		return token
	}
	return folded
}

// ParseCount extracts a whole count from a tag value such as "2", "3 steps",
// "zwei" or "one". Decimals, sentences and values without digits are unknown.
func ParseCount(raw string) (int, bool) {
	token, ok := Normalize(raw)
	if !ok || !IsSimple(token) {
		return 0, false
	}

	if decimalPattern.MatchString(token) {
		return 0, false
	}

	if n, found := numberWords[fold(token)]; found {
		return n, true
	}

	run := digitRunPattern.FindString(token)
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCountPtr is ParseCount for optional values.
func ParseCountPtr(raw *string) *int {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	n, ok := ParseCount(*raw)
	if !ok {
		return nil
	}
	return &n
}
