package ecpay

import (
	"net/url"
	"sort"
	"strings"
)

// unescaped lists the percent-codes ECPay expects back as literal characters
// after the lower-casing step.
var unescaped = strings.NewReplacer(
	"%2d", "-",
	"%5f", "_",
	"%2e", ".",
	"%21", "!",
	"%2a", "*",
	"%28", "(",
	"%29", ")",
)

// Canonicalize renders fields into the string that CheckMacValue is computed
// over: keys sorted by byte order, joined as name=value pairs, wrapped with
// HashKey and HashIV, form-encoded, lower-cased and partially unescaped.
// Values are treated as opaque, so '=' or '&' inside a value is just encoded.
func Canonicalize(fields map[string]string, hashKey, hashIV string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("HashKey=")
	b.WriteString(hashKey)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	b.WriteString("&HashIV=")
	b.WriteString(hashIV)

	return encode(b.String())
}

// encode follows the gateway's form encoding: space becomes '+', and '~' is
// percent-encoded even though Go leaves it alone.
func encode(raw string) string {
	escaped := url.QueryEscape(raw)
	escaped = strings.ReplaceAll(escaped, "~", "%7E")
	return unescaped.Replace(strings.ToLower(escaped))
}
