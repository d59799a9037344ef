package messaging

import "strings"

// Tokens understood by lead templates.
const (
	TokenName      = "nome"
	TokenPhone     = "telefone"
	TokenDate      = "data"
	TokenTime      = "horario"
	TokenProcedure = "procedimento"
	TokenValue     = "valor"
	TokenNotes     = "observacoes"
)

// Render replaces every {token} in one left-to-right pass. Tokens without a
// value become empty strings and substituted values are never rescanned.
// Braces that do not enclose a token name are copied as they are.
func Render(tmpl string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i+1:], '}'); end >= 0 {
				name := tmpl[i+1 : i+1+end]
				if isTokenName(name) {
					b.WriteString(values[name])
					i += end + 2
					continue
				}
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}

	return b.String()
}

func isTokenName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	return true
}
