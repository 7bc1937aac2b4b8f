// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings,
// e.g. "Électric & Power Tools" becomes "electric-and-power-tools".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs. Longer results are cut at the last
// hyphen that fits.
const MaxLength = 100

// letters that do not decompose into an ASCII base plus accents.
var transliterate = strings.NewReplacer(
	"&", " and ",
	"ß", "ss",
	"æ", "ae", "Æ", "ae",
	"ø", "o", "Ø", "o",
	"đ", "d", "Đ", "d",
	"ł", "l", "Ł", "l",
)

// From converts s into a lowercase slug of a-z, 0-9 and single hyphens.
// It returns "" when s has nothing usable.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	ascii, _, _ := transform.String(stripAccents, transliterate.Replace(s))

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(ascii) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return truncate(builder.String())
}

func truncate(slug string) string {
	if len(slug) <= MaxLength {
		return slug
	}
	cut := slug[:MaxLength]
	if slug[MaxLength] != '-' {
		if index := strings.LastIndexByte(cut, '-'); index > 0 {
			cut = cut[:index]
		}
	}
	return strings.TrimSuffix(cut, "-")
}

// isMn reports whether r is a non-spacing mark (an accent after NFD).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
