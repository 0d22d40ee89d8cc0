package urlencoded

import (
	"strings"

	"github.com/indigo-web/catalina/http/status"
	"github.com/indigo-web/catalina/internal/hexconv"
	"github.com/indigo-web/catalina/kv"
	"github.com/indigo-web/utils/uf"
)

// ExtendedDecode decodes percent-encoded sequences and pluses (as spaces) of src into dst,
// but omits it if there's nothing to be decoded. `dst` can be src[:0] as well in order to
// decode "into itself".
func ExtendedDecode(src, dst []byte) (decoded, buffer []byte, err error) {
	dsthead := len(dst)
	modified := false

loop:
	for i, c := range src {
		if c == '+' {
			modified = true
			dst = append(dst, src[:i]...)
			dst = append(dst, ' ')
			src = src[i+1:]
			goto loop
		} else if c == '%' {
			modified = true

			if len(src)-i < 3 {
				return nil, dst, status.ErrURLDecoding
			}

			a, b := hexconv.Halfbyte[src[i+1]], hexconv.Halfbyte[src[i+2]]
			if a|b > 0x0f {
				return nil, dst, status.ErrURLDecoding
			}
			dst = append(dst, src[:i]...)
			dst = append(dst, (a<<4)|b)
			src = src[i+3:]
			goto loop
		}
	}

	if !modified {
		return src, dst, nil
	}

	dst = append(dst, src...)
	return dst[dsthead:], dst, nil
}

// DecodeString decodes a form-encoded string. The result never shares memory with
// a reused buffer, so it's safe to be stored.
func DecodeString(src string) (string, error) {
	decoded, _, err := ExtendedDecode(uf.S2B(src), nil)
	if err != nil {
		return "", err
	}

	if len(decoded) == len(src) && uf.B2S(decoded) == src {
		return src, nil
	}

	return string(decoded), nil
}

// Parse splits data by '&' into key=value pairs, decodes the key and the value of each
// independently and sets them into dst, so a repeated key keeps its last value. Pairs
// without '=' are dropped.
func Parse(data string, dst *kv.Storage) error {
	for len(data) > 0 {
		var pair string
		if amp := strings.IndexByte(data, '&'); amp != -1 {
			pair, data = data[:amp], data[amp+1:]
		} else {
			pair, data = data, ""
		}

		rawKey, rawValue, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		key, err := DecodeString(rawKey)
		if err != nil {
			return err
		}

		value, err := DecodeString(rawValue)
		if err != nil {
			return err
		}

		dst.Set(key, value)
	}

	return nil
}
