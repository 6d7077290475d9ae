package manufacturing

import (
	"fmt"
	"math/rand"
	"time"
)

// newReference genera una referencia legible: prefijo + fecha yymmdd + 4
// dígitos aleatorios (p.ej. MO2509010042). La unicidad real la garantiza el
// constraint de la tabla; ante colisión el caller reintenta.
func newReference(prefix string) string {
	return fmt.Sprintf("%s%s%04d", prefix, time.Now().Format("060102"), rand.Intn(10000))
}
