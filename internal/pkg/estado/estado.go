package estado

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	Activo   = "ACTIVO"
	Inactivo = "INACTIVO"
)

// Transicion es el par (anterior, actual) de un cambio de estado. Se
// construye una sola vez por cambio y viaja junto al registro de bitácora
// dentro de la misma transacción; nunca se infiere con una segunda lectura.
type Transicion struct {
	Anterior string
	Actual   string
}

// TransicionInvalidaError indica un cambio de estado fuera de la lista
// permitida o un cambio sin efecto (anterior == actual).
type TransicionInvalidaError struct {
	Campo    string
	Anterior string
	Actual   string
	Motivo   string
}

func (e *TransicionInvalidaError) Error() string {
	return fmt.Sprintf("transición inválida de %s: %q -> %q (%s)", e.Campo, e.Anterior, e.Actual, e.Motivo)
}

// Flujo valida transiciones de un campo de estado contra su lista de
// valores permitidos. Los estados terminales no están cableados: un valor
// ausente de la lista simplemente deja de ser alcanzable.
type Flujo struct {
	campo      string
	permitidos map[string]bool
	orden      []string
}

func NuevoFlujo(campo string, valores []string) *Flujo {
	permitidos := make(map[string]bool, len(valores))
	for _, v := range valores {
		permitidos[v] = true
	}
	return &Flujo{campo: campo, permitidos: permitidos, orden: valores}
}

// Valores devuelve la lista permitida en el orden configurado.
func (f *Flujo) Valores() []string {
	return f.orden
}

// Permitido indica si un valor pertenece a la lista del flujo.
func (f *Flujo) Permitido(valor string) bool {
	return f.permitidos[valor]
}

// Transicionar calcula la transición actual -> nuevo. Rechaza valores fuera
// de la lista y también el no-cambio: cada transición aceptada produce
// exactamente una fila de bitácora, y una transición vacía rompería esa
// correspondencia uno a uno.
func (f *Flujo) Transicionar(actual, nuevo string) (Transicion, error) {
	if !f.permitidos[nuevo] {
		return Transicion{}, &TransicionInvalidaError{
			Campo:    f.campo,
			Anterior: actual,
			Actual:   nuevo,
			Motivo:   "valor fuera de la lista permitida",
		}
	}
	if actual == nuevo {
		return Transicion{}, &TransicionInvalidaError{
			Campo:    f.campo,
			Anterior: actual,
			Actual:   nuevo,
			Motivo:   "el estado no cambia",
		}
	}
	return Transicion{Anterior: actual, Actual: nuevo}, nil
}

// Listas por defecto; se pueden sobreescribir en configs.json con
// estados.evento y estados.despliegue.
var (
	estadosEventoDefecto = []string{
		"ABIERTO", "EN_ATENCION", "RESUELTO", "CERRADO",
	}
	estadosDespliegueDefecto = []string{
		"SOLICITADO", "APROBADO", "EN_EJECUCION", "COMPLETADO", "RECHAZADO", "CANCELADO",
	}
)

// FlujoEvento arma el flujo de estado_evento desde la configuración.
func FlujoEvento() *Flujo {
	valores := viper.GetStringSlice("estados.evento")
	if len(valores) == 0 {
		valores = estadosEventoDefecto
	}
	return NuevoFlujo("estado_evento", valores)
}

// FlujoDespliegue arma el flujo de estado_despliegue desde la configuración.
func FlujoDespliegue() *Flujo {
	valores := viper.GetStringSlice("estados.despliegue")
	if len(valores) == 0 {
		valores = estadosDespliegueDefecto
	}
	return NuevoFlujo("estado_despliegue", valores)
}

// FlujoRegistro es el flujo binario ACTIVO/INACTIVO común a las entidades.
func FlujoRegistro() *Flujo {
	return NuevoFlujo("estado", []string{Activo, Inactivo})
}
