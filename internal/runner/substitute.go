package runner

import "strings"

// Substitute resolves ${name} placeholders in a command template. Each
// token is replaced against the original template in a single pass, so a
// value containing ${other} is never re-expanded. Placeholders without a
// matching entry in values are left verbatim.
func Substitute(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		if template[i] == '$' && i+1 < len(template) && template[i+1] == '{' {
			if end := strings.IndexByte(template[i+2:], '}'); end >= 0 {
				name := template[i+2 : i+2+end]
				if value, ok := values[name]; ok {
					b.WriteString(value)
					i += end + 3
					continue
				}
			}
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}
