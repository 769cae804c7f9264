package usecase

import (
	"strconv"
	"strings"
)

// groupSeparator は桁区切り文字です（ロシア語圏の表記に合わせて空白を使います）
const groupSeparator = " "

// FormatPrice は整数を3桁ごとに区切った文字列にします（例: 1234567 → "1 234 567"）
func FormatPrice(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteString(groupSeparator)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatEnhancement は強化レベルの表示ラベルを返します（例: 7 → "+7"）
func FormatEnhancement(level int) string {
	return "+" + strconv.Itoa(level)
}
