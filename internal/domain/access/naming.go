package access

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DeriveRoleName convierte un nombre visible en clave de máquina lower_snake.
// "Senior Tailor" -> "senior_tailor"; "Diseñadora Jefe" -> "disenadora_jefe".
// Devuelve "" si no queda ningún carácter alfanumérico.
func DeriveRoleName(displayName string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		displayName,
	)
	if err != nil {
		folded = displayName
	}
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// UniqueRoleName resuelve colisiones agregando un contador: base, base_2, base_3...
// taken informa si un nombre ya existe.
func UniqueRoleName(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
