package cookie

import (
	"strings"

	"github.com/indigo-web/catalina/kv"
)

// Jar is a key-value storage for cookies, received from a user-agent. Key-value pairs
// consist of strings, not cookie.Cookie, as request cookies carry no attributes. Names
// are case-sensitive.
type Jar = *kv.Storage

func NewJar() Jar {
	return kv.NewCaseSensitive()
}

// Parse parses the value of a Cookie header into the jar. Pieces are separated by
// semicolons and trimmed; each piece is split at its first '='. Pieces without '='
// are dropped. Repeated names keep the last value.
func Parse(jar Jar, data string) Jar {
	for len(data) > 0 {
		var piece string
		if semicolon := strings.IndexByte(data, ';'); semicolon != -1 {
			piece, data = data[:semicolon], data[semicolon+1:]
		} else {
			piece, data = data, ""
		}

		key, value, found := strings.Cut(strings.TrimSpace(piece), "=")
		if !found {
			continue
		}

		jar.Set(key, value)
	}

	return jar
}
