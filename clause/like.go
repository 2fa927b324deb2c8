package clause

import (
	"strings"
)

const (
	// DefaultEscape escape character of generated like patterns
	DefaultEscape = '\\'
	// AnyChar like wildcard matching one character
	AnyChar = '_'
	// AnyString like wildcard matching any sequence of characters
	AnyString = '%'
)

// EscapeLike escapes the like wildcards and the escape character itself so text matches literally
func EscapeLike(text string, escape rune) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == AnyChar || r == AnyString || r == escape {
			b.WriteRune(escape)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TranslateWildcards converts a pattern written with custom wildcards into a
// like pattern using %, _ and \. A custom wildcard preceded by escape is kept
// literally, text that happens to contain %, _ or \ is escaped.
func TranslateWildcards(pattern string, charWildcard, stringWildcard, escape rune) string {
	var (
		b       strings.Builder
		escaped bool
	)

	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(EscapeLike(string(r), DefaultEscape))
			escaped = false
		case r == escape:
			escaped = true
		case r == charWildcard:
			b.WriteRune(AnyChar)
		case r == stringWildcard:
			b.WriteRune(AnyString)
		default:
			b.WriteString(EscapeLike(string(r), DefaultEscape))
		}
	}

	// dangling escape matches itself
	if escaped {
		b.WriteString(EscapeLike(string(escape), DefaultEscape))
	}
	return b.String()
}

// LikePattern pattern used as is, without escape character
func LikePattern(pattern string) Like {
	return Like{Pattern: pattern}
}

// LikeLiteral matches text exactly
func LikeLiteral(text string) Like {
	return Like{Pattern: EscapeLike(text, DefaultEscape), Escape: DefaultEscape}
}

// LikePrefix matches values starting with text
func LikePrefix(text string) Like {
	return Like{Pattern: EscapeLike(text, DefaultEscape) + string(AnyString), Escape: DefaultEscape}
}

// LikeSuffix matches values ending with text
func LikeSuffix(text string) Like {
	return Like{Pattern: string(AnyString) + EscapeLike(text, DefaultEscape), Escape: DefaultEscape}
}

// LikeSubstring matches values containing text
func LikeSubstring(text string) Like {
	return Like{Pattern: string(AnyString) + EscapeLike(text, DefaultEscape) + string(AnyString), Escape: DefaultEscape}
}

// LikeCustom pattern using charWildcard and stringWildcard in place of _ and %,
// e.g. LikeCustom("Jo?n*", '?', '*') matches like Jo_n%
func LikeCustom(pattern string, charWildcard, stringWildcard rune) Like {
	return Like{Pattern: TranslateWildcards(pattern, charWildcard, stringWildcard, DefaultEscape), Escape: DefaultEscape}
}

func buildLike(expr Expression, op string, pattern string, escape rune, builder Builder) {
	expr.Build(builder)
	builder.WriteString(op)
	builder.WriteString(builder.AddVar(pattern))
	if escape != 0 && strings.ContainsRune(pattern, escape) {
		builder.WriteString(" escape '")
		builder.WriteString(strings.ReplaceAll(string(escape), "'", "''"))
		builder.WriteByte('\'')
	}
}
