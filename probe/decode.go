package probe

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var errBadEncoding = errors.New("byte sequence not valid for encoding")

// DecodeOutput converts raw process output to a string without ever failing.
// Tools print in whatever encoding the console happens to use, which on
// Windows or CJK locales is often not UTF-8. The fallback order mirrors the
// damage it is meant to survive: strict UTF-8, the locale's own charset,
// GBK/CP936 for legacy CJK consoles, and finally Latin-1, which accepts any
// byte sequence.
func DecodeOutput(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		return string(b)
	}

	if e := localeEncoding(); e != nil {
		if s, err := decodeStrict(e, b); err == nil {
			return s
		}
	}
	if s, err := decodeStrict(simplifiedchinese.GBK, b); err == nil {
		return s
	}

	// Latin-1 maps every byte to a code point, so this cannot fail.
	out, _, _ := transform.Bytes(charmap.ISO8859_1.NewDecoder(), b)
	return string(out)
}

// localeEncoding resolves the charset named by the locale environment
// (e.g. LANG=zh_CN.GB2312 -> gb2312). Returns nil when the locale is unset,
// has no charset suffix, or names something charset.Lookup doesn't know.
func localeEncoding() encoding.Encoding {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		i := strings.IndexByte(v, '.')
		if i < 0 {
			continue
		}
		name := v[i+1:]
		if j := strings.IndexByte(name, '@'); j >= 0 {
			name = name[:j]
		}
		if e, _ := charset.Lookup(name); e != nil {
			return e
		}
	}
	return nil
}

// decodeStrict rejects input the encoding cannot truly represent. x/text
// decoders substitute U+FFFD for invalid bytes instead of failing, which
// would make every step of the fallback chain "succeed" and never hand the
// bytes to the next candidate; a replacement char in the output therefore
// counts as a failed decode.
func decodeStrict(e encoding.Encoding, b []byte) (string, error) {
	out, _, err := transform.Bytes(e.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", errBadEncoding
	}
	return string(out), nil
}
