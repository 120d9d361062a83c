// Package sequence formatea los identificadores legibles (CUST001, ORD001...).
// El contador lo entrega el repositorio; aquí solo vive el formato.
package sequence

import "fmt"

// Prefijos por tipo de entidad.
const (
	PrefixCustomer     = "CUST"
	PrefixOrder        = "ORD"
	PrefixPayment      = "PAY"
	PrefixItem         = "ITM"
	PrefixNotification = "NTF"
)

// Format devuelve <PREFIJO><contador con ceros a la izquierda, mínimo 3 dígitos>.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
