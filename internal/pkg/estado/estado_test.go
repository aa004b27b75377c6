package estado

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransicionarAceptaCambioPermitido(t *testing.T) {
	f := NuevoFlujo("estado_evento", []string{"ABIERTO", "EN_ATENCION", "CERRADO"})

	tr, err := f.Transicionar("ABIERTO", "EN_ATENCION")
	require.NoError(t, err)
	assert.Equal(t, "ABIERTO", tr.Anterior)
	assert.Equal(t, "EN_ATENCION", tr.Actual)
}

func TestTransicionarRechazaValorFueraDeLista(t *testing.T) {
	f := NuevoFlujo("estado_evento", []string{"ABIERTO", "CERRADO"})

	_, err := f.Transicionar("ABIERTO", "ARCHIVADO")
	require.Error(t, err)

	var invalida *TransicionInvalidaError
	require.True(t, errors.As(err, &invalida))
	assert.Equal(t, "estado_evento", invalida.Campo)
	assert.Equal(t, "ARCHIVADO", invalida.Actual)
}

func TestTransicionarRechazaNoCambio(t *testing.T) {
	f := NuevoFlujo("estado_despliegue", []string{"SOLICITADO", "APROBADO"})

	_, err := f.Transicionar("APROBADO", "APROBADO")
	var invalida *TransicionInvalidaError
	require.True(t, errors.As(err, &invalida))
	assert.Equal(t, "el estado no cambia", invalida.Motivo)
}

func TestValoresConservaElOrdenConfigurado(t *testing.T) {
	valores := []string{"SOLICITADO", "APROBADO", "COMPLETADO"}
	f := NuevoFlujo("estado_despliegue", valores)
	assert.Equal(t, valores, f.Valores())
	assert.True(t, f.Permitido("APROBADO"))
	assert.False(t, f.Permitido("RECHAZADO"))
}

func TestFlujosPorDefecto(t *testing.T) {
	evento := FlujoEvento()
	require.NotEmpty(t, evento.Valores())
	assert.Equal(t, "ABIERTO", evento.Valores()[0])

	despliegue := FlujoDespliegue()
	require.NotEmpty(t, despliegue.Valores())
	assert.Equal(t, "SOLICITADO", despliegue.Valores()[0])
}
