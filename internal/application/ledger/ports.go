package ledger

import (
	"time"

	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
)

// DayLayout es la clave de día calendario usada por todos los agregados.
const DayLayout = "2006-01-02"

// Clock provee el instante actual y la zona horaria que define el corte de
// día. Se inyecta para que el comportamiento sea determinista en tests.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reloj de pared en hora local.
type SystemClock struct{}

func (SystemClock) Now() time.Time           { return time.Now() }
func (SystemClock) Location() *time.Location { return time.Local }

// DayKey trunca un instante al día calendario en la zona del reloj.
// Toda comparación de fechas del sistema pasa por aquí, así el corte de día
// es consistente entre totales, feed de actividad y reportes.
func DayKey(c Clock, t time.Time) string {
	return t.In(c.Location()).Format(DayLayout)
}

// Persistence es el contrato de persistencia que consume el Ledger Store.
// El medio de respaldo (archivo local, almacenamiento remoto) es ajeno al
// núcleo; Load en un medio vacío debe devolver un snapshot vacío.
type Persistence interface {
	Save(snapshot *entity.LedgerSnapshot) error
	Load() (*entity.LedgerSnapshot, error)
}
