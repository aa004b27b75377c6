package infraestructura

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	operaciones "github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/model"
)

func abrirBase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:infra_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&DataCenter{},
		&Hardware{},
		&Servidor{},
		&Maquina{},
		&ServidorMaquina{},
		&Cluster{},
		&AsignacionServidorMaquina{},
	))
	return db
}

type parque struct {
	servidor Servidor
	maquina  Maquina
	cluster  Cluster
}

func crearParque(t *testing.T, db *gorm.DB) parque {
	t.Helper()
	dc := DataCenter{Nombre: "DC Central", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&dc).Error)
	hw := Hardware{IDDataCenter: dc.ID, Serie: "HW-0001", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&hw).Error)
	srv := Servidor{IDHardware: hw.ID, Nombre: "blade-01", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&srv).Error)
	m := Maquina{Nombre: "vm-app-01", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&m).Error)
	cl := Cluster{Nombre: "produccion", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&cl).Error)
	return parque{servidor: srv, maquina: m, cluster: cl}
}

func vinculoDe(p parque, actor uint) ServidorMaquina {
	return ServidorMaquina{
		IDServidor: p.servidor.ID,
		IDMaquina:  p.maquina.ID,
		Registro:   inventario.NuevoRegistro(actor),
	}
}

func asignacionDe(p parque, actor uint) AsignacionServidorMaquina {
	return AsignacionServidorMaquina{
		IDCluster:  p.cluster.ID,
		IDServidor: p.servidor.ID,
		IDMaquina:  p.maquina.ID,
		Registro:   inventario.NuevoRegistro(actor),
	}
}

func TestVincularServidorMaquinaRechazaDuplicadoActivo(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)
	ctx := context.Background()

	_, err := repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	require.NoError(t, err)

	_, err = repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	assert.ErrorIs(t, err, ErrVinculoActivo)
}

func TestVincularServidorMaquinaReactivaLaMismaFila(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)
	ctx := context.Background()

	original, err := repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	require.NoError(t, err)

	_, err = repo.DesvincularServidorMaquina(ctx, original.ID, 2)
	require.NoError(t, err)

	reactivado, err := repo.VincularServidorMaquina(ctx, vinculoDe(p, 3))
	require.NoError(t, err)
	assert.Equal(t, original.ID, reactivado.ID)
	assert.Equal(t, inventario.EstadoActivo, reactivado.Estado)

	var total int64
	require.NoError(t, db.Model(&ServidorMaquina{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestVincularRechazaServidorInactivo(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)

	require.NoError(t, db.Model(&Servidor{}).
		Where("id = ?", p.servidor.ID).Update("estado", inventario.EstadoInactivo).Error)

	_, err := repo.VincularServidorMaquina(context.Background(), vinculoDe(p, 1))
	assert.ErrorIs(t, err, ErrReferenciaInactiva)
}

func TestAsignarClusterExigeVinculoActivo(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)
	ctx := context.Background()

	// Sin vínculo servidor+máquina la asignación no procede.
	_, err := repo.AsignarCluster(ctx, asignacionDe(p, 1))
	assert.ErrorIs(t, err, ErrReferenciaInactiva)

	_, err = repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	require.NoError(t, err)

	a, err := repo.AsignarCluster(ctx, asignacionDe(p, 1))
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
}

func TestDesvincularRechazadoConAsignacionActiva(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)
	ctx := context.Background()

	v, err := repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	require.NoError(t, err)
	a, err := repo.AsignarCluster(ctx, asignacionDe(p, 1))
	require.NoError(t, err)

	_, err = repo.DesvincularServidorMaquina(ctx, v.ID, 1)
	assert.ErrorIs(t, err, ErrVinculosActivos)

	// Tras soltar la asignación la desvinculación procede.
	_, err = repo.DesasignarCluster(ctx, a.ID, 1)
	require.NoError(t, err)
	suelto, err := repo.DesvincularServidorMaquina(ctx, v.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, suelto.Estado)
}

func TestAsignarClusterReactivaLaMismaFila(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)
	ctx := context.Background()

	_, err := repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	require.NoError(t, err)

	original, err := repo.AsignarCluster(ctx, asignacionDe(p, 1))
	require.NoError(t, err)
	_, err = repo.DesasignarCluster(ctx, original.ID, 1)
	require.NoError(t, err)

	reactivada, err := repo.AsignarCluster(ctx, asignacionDe(p, 2))
	require.NoError(t, err)
	assert.Equal(t, original.ID, reactivada.ID)

	var total int64
	require.NoError(t, db.Model(&AsignacionServidorMaquina{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestEliminarMaquinaConVinculos(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	p := crearParque(t, db)
	ctx := context.Background()

	v, err := repo.VincularServidorMaquina(ctx, vinculoDe(p, 1))
	require.NoError(t, err)
	_, err = repo.DesvincularServidorMaquina(ctx, v.ID, 1)
	require.NoError(t, err)

	// El borrado físico se rechaza aunque el vínculo esté inactivo.
	err = repo.EliminarMaquina(ctx, p.maquina.ID)
	assert.ErrorIs(t, err, ErrIntegridadReferencial)
}

func TestDesactivarMaquinaConRolActivo(t *testing.T) {
	db := abrirBase(t)
	require.NoError(t, db.AutoMigrate(
		&inventario.Usuario{},
		&inventario.Rol{},
		&inventario.Sistema{},
		&inventario.UsuarioRol{},
		&operaciones.Despliegue{},
	))
	svc := NewService(NewRepository(db))
	p := crearParque(t, db)
	ctx := context.Background()

	u := inventario.Usuario{
		Nombre:        "Ana Quispe",
		NombreUsuario: "aquispe",
		Correo:        "aquispe@example.com",
		Contrasena:    "$argon2id$hash",
		Registro:      inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&u).Error)
	r := inventario.Rol{Nombre: "OPERADOR", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&r).Error)
	s := inventario.Sistema{Codigo: "SIGA", Nombre: "Sistema de gestión", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&s).Error)
	a := inventario.UsuarioRol{
		IDUsuario: u.ID,
		IDRol:     r.ID,
		IDMaquina: p.maquina.ID,
		IDSistema: s.ID,
		Registro:  inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&a).Error)

	_, err := svc.DesactivarMaquina(ctx, p.maquina.ID, 1)
	assert.ErrorIs(t, err, ErrVinculosActivos)

	// La máquina sigue activa: la asignación de rol no quedó huérfana.
	var m Maquina
	require.NoError(t, db.First(&m, p.maquina.ID).Error)
	assert.Equal(t, inventario.EstadoActivo, m.Estado)

	require.NoError(t, db.Model(&inventario.UsuarioRol{}).
		Where("id = ?", a.ID).Update("estado", inventario.EstadoInactivo).Error)

	baja, err := svc.DesactivarMaquina(ctx, p.maquina.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, baja.Estado)
}
