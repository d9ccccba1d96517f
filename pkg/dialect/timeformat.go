package dialect

import "strings"

// translateFormat rewrites a format string from one vocabulary to another.
// It scans left to right taking the longest matching directive at each
// position; text that matches no directive passes through unchanged. The
// surrounding quotes of a quoted format literal are preserved.
func translateFormat(format string, mapping map[string]string, keys []string) string {
	if format == "" || len(mapping) == 0 {
		return format
	}

	var out strings.Builder
	out.Grow(len(format))

	for i := 0; i < len(format); {
		matched := false
		for _, key := range keys {
			if strings.HasPrefix(format[i:], key) {
				out.WriteString(mapping[key])
				i += len(key)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(format[i])
			i++
		}
	}

	return out.String()
}
