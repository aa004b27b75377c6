package infraestructura

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/transaccion"
	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	operaciones "github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/model"
)

// Repository cubre el inventario físico: data centers, hardware, servidores,
// máquinas y clusters, más los vínculos entre ellos (repository_vinculos.go).
type Repository interface {
	CrearDataCenter(ctx context.Context, d DataCenter) (DataCenter, error)
	LeerDataCenter(ctx context.Context, id uint) (DataCenter, error)
	ListarDataCenters(ctx context.Context, page, size int) ([]DataCenter, error)
	ActualizarDataCenter(ctx context.Context, d DataCenter) (DataCenter, error)
	EliminarDataCenter(ctx context.Context, id uint) error

	CrearHardware(ctx context.Context, h Hardware) (Hardware, error)
	LeerHardware(ctx context.Context, id uint) (Hardware, error)
	ListarHardware(ctx context.Context, idDataCenter uint, page, size int) ([]Hardware, error)
	ActualizarHardware(ctx context.Context, h Hardware) (Hardware, error)
	EliminarHardware(ctx context.Context, id uint) error

	CrearServidor(ctx context.Context, s Servidor) (Servidor, error)
	LeerServidor(ctx context.Context, id uint) (Servidor, error)
	ListarServidores(ctx context.Context, idHardware uint, page, size int) ([]Servidor, error)
	ActualizarServidor(ctx context.Context, s Servidor) (Servidor, error)
	EliminarServidor(ctx context.Context, id uint) error
	ContarVinculosActivosServidor(ctx context.Context, id uint) (int64, error)

	CrearMaquina(ctx context.Context, m Maquina) (Maquina, error)
	LeerMaquina(ctx context.Context, id uint) (Maquina, error)
	ListarMaquinas(ctx context.Context, page, size int) ([]Maquina, error)
	ActualizarMaquina(ctx context.Context, m Maquina) (Maquina, error)
	EliminarMaquina(ctx context.Context, id uint) error
	ContarVinculosActivosMaquina(ctx context.Context, id uint) (int64, error)

	CrearCluster(ctx context.Context, c Cluster) (Cluster, error)
	LeerCluster(ctx context.Context, id uint) (Cluster, error)
	ListarClusters(ctx context.Context, page, size int) ([]Cluster, error)
	ActualizarCluster(ctx context.Context, c Cluster) (Cluster, error)
	EliminarCluster(ctx context.Context, id uint) error
	ContarAsignacionesActivasCluster(ctx context.Context, id uint) (int64, error)

	VincularServidorMaquina(ctx context.Context, v ServidorMaquina) (ServidorMaquina, error)
	DesvincularServidorMaquina(ctx context.Context, id uint, actor uint) (ServidorMaquina, error)
	ListarVinculos(ctx context.Context, idServidor, idMaquina uint) ([]ServidorMaquina, error)

	AsignarCluster(ctx context.Context, a AsignacionServidorMaquina) (AsignacionServidorMaquina, error)
	DesasignarCluster(ctx context.Context, id uint, actor uint) (AsignacionServidorMaquina, error)
	ListarAsignaciones(ctx context.Context, idCluster uint) ([]AsignacionServidorMaquina, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

// referenciaActiva valida que la fila exista con estado ACTIVO dentro de la
// transacción en curso.
func referenciaActiva(tx *gorm.DB, modelo interface{}, id uint) error {
	var total int64
	err := tx.Model(modelo).
		Where("id = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&total).Error
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrReferenciaInactiva
	}
	return nil
}

func (r *implRepository) CrearDataCenter(ctx context.Context, d DataCenter) (DataCenter, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return DataCenter{}, mapErrorPg(err)
	}
	return d, nil
}

func (r *implRepository) LeerDataCenter(ctx context.Context, id uint) (DataCenter, error) {
	var d DataCenter
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DataCenter{}, ErrNoEncontrado
	}
	if err != nil {
		return DataCenter{}, err
	}
	return d, nil
}

func (r *implRepository) ListarDataCenters(ctx context.Context, page, size int) ([]DataCenter, error) {
	var dcs []DataCenter
	err := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size).Find(&dcs).Error
	return dcs, err
}

func (r *implRepository) ActualizarDataCenter(ctx context.Context, d DataCenter) (DataCenter, error) {
	res := r.db.WithContext(ctx).Model(&DataCenter{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"nombre":               d.Nombre,
			"ubicacion":            d.Ubicacion,
			"estado":               d.Estado,
			"fecha_modificacion":   d.FechaModificacion,
			"usuario_modificacion": d.UsuarioModificacion,
		})
	if res.Error != nil {
		return DataCenter{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return DataCenter{}, ErrNoEncontrado
	}
	return d, nil
}

func (r *implRepository) EliminarDataCenter(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&Hardware{}).Where("id_data_center = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		if err := tx.Model(&operaciones.InfraAfectada{}).Where("id_data_center = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&DataCenter{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func (r *implRepository) CrearHardware(ctx context.Context, h Hardware) (Hardware, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := referenciaActiva(tx, &DataCenter{}, h.IDDataCenter); err != nil {
			return err
		}
		return tx.Create(&h).Error
	})
	if err != nil {
		return Hardware{}, mapErrorPg(err)
	}
	return h, nil
}

func (r *implRepository) LeerHardware(ctx context.Context, id uint) (Hardware, error) {
	var h Hardware
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Hardware{}, ErrNoEncontrado
	}
	if err != nil {
		return Hardware{}, err
	}
	return h, nil
}

func (r *implRepository) ListarHardware(ctx context.Context, idDataCenter uint, page, size int) ([]Hardware, error) {
	var hws []Hardware
	q := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size)
	if idDataCenter != 0 {
		q = q.Where("id_data_center = ?", idDataCenter)
	}
	err := q.Find(&hws).Error
	return hws, err
}

func (r *implRepository) ActualizarHardware(ctx context.Context, h Hardware) (Hardware, error) {
	res := r.db.WithContext(ctx).Model(&Hardware{}).
		Where("id = ?", h.ID).
		Updates(map[string]interface{}{
			"marca":                h.Marca,
			"modelo":               h.Modelo,
			"estado":               h.Estado,
			"fecha_modificacion":   h.FechaModificacion,
			"usuario_modificacion": h.UsuarioModificacion,
		})
	if res.Error != nil {
		return Hardware{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Hardware{}, ErrNoEncontrado
	}
	return h, nil
}

func (r *implRepository) EliminarHardware(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&Servidor{}).Where("id_hardware = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		if err := tx.Model(&operaciones.InfraAfectada{}).Where("id_hardware = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&Hardware{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func (r *implRepository) CrearServidor(ctx context.Context, s Servidor) (Servidor, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := referenciaActiva(tx, &Hardware{}, s.IDHardware); err != nil {
			return err
		}
		return tx.Create(&s).Error
	})
	if err != nil {
		return Servidor{}, mapErrorPg(err)
	}
	return s, nil
}

func (r *implRepository) LeerServidor(ctx context.Context, id uint) (Servidor, error) {
	var s Servidor
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Servidor{}, ErrNoEncontrado
	}
	if err != nil {
		return Servidor{}, err
	}
	return s, nil
}

func (r *implRepository) ListarServidores(ctx context.Context, idHardware uint, page, size int) ([]Servidor, error) {
	var servidores []Servidor
	q := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size)
	if idHardware != 0 {
		q = q.Where("id_hardware = ?", idHardware)
	}
	err := q.Find(&servidores).Error
	return servidores, err
}

func (r *implRepository) ActualizarServidor(ctx context.Context, s Servidor) (Servidor, error) {
	res := r.db.WithContext(ctx).Model(&Servidor{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"nombre":               s.Nombre,
			"estado":               s.Estado,
			"fecha_modificacion":   s.FechaModificacion,
			"usuario_modificacion": s.UsuarioModificacion,
		})
	if res.Error != nil {
		return Servidor{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Servidor{}, ErrNoEncontrado
	}
	return s, nil
}

func (r *implRepository) ContarVinculosActivosServidor(ctx context.Context, id uint) (int64, error) {
	var vinculos, asignaciones int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&ServidorMaquina{}).
		Where("id_servidor = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&vinculos).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&AsignacionServidorMaquina{}).
		Where("id_servidor = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&asignaciones).Error; err != nil {
		return 0, err
	}
	return vinculos + asignaciones, nil
}

func (r *implRepository) EliminarServidor(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&ServidorMaquina{}).Where("id_servidor = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		if err := tx.Model(&AsignacionServidorMaquina{}).Where("id_servidor = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		if err := tx.Model(&operaciones.InfraAfectada{}).Where("id_servidor = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&Servidor{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func (r *implRepository) CrearMaquina(ctx context.Context, m Maquina) (Maquina, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return Maquina{}, mapErrorPg(err)
	}
	return m, nil
}

func (r *implRepository) LeerMaquina(ctx context.Context, id uint) (Maquina, error) {
	var m Maquina
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Maquina{}, ErrNoEncontrado
	}
	if err != nil {
		return Maquina{}, err
	}
	return m, nil
}

func (r *implRepository) ListarMaquinas(ctx context.Context, page, size int) ([]Maquina, error) {
	var maquinas []Maquina
	err := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size).Find(&maquinas).Error
	return maquinas, err
}

func (r *implRepository) ActualizarMaquina(ctx context.Context, m Maquina) (Maquina, error) {
	res := r.db.WithContext(ctx).Model(&Maquina{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"nombre":               m.Nombre,
			"ip":                   m.IP,
			"sistema_operativo":    m.SistemaOperativo,
			"estado":               m.Estado,
			"fecha_modificacion":   m.FechaModificacion,
			"usuario_modificacion": m.UsuarioModificacion,
		})
	if res.Error != nil {
		return Maquina{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Maquina{}, ErrNoEncontrado
	}
	return m, nil
}

func (r *implRepository) ContarVinculosActivosMaquina(ctx context.Context, id uint) (int64, error) {
	var vinculos, asignaciones, roles, despliegues int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&ServidorMaquina{}).
		Where("id_maquina = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&vinculos).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&AsignacionServidorMaquina{}).
		Where("id_maquina = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&asignaciones).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&inventario.UsuarioRol{}).
		Where("id_maquina = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&roles).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&operaciones.Despliegue{}).
		Where("id_maquina = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&despliegues).Error; err != nil {
		return 0, err
	}
	return vinculos + asignaciones + roles + despliegues, nil
}

func (r *implRepository) EliminarMaquina(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		referencias := []struct {
			modelo interface{}
			campo  string
		}{
			{&ServidorMaquina{}, "id_maquina"},
			{&AsignacionServidorMaquina{}, "id_maquina"},
			{&inventario.UsuarioRol{}, "id_maquina"},
			{&operaciones.Despliegue{}, "id_maquina"},
			{&operaciones.InfraAfectada{}, "id_maquina"},
		}
		for _, ref := range referencias {
			var total int64
			if err := tx.Model(ref.modelo).Where(ref.campo+" = ?", id).Count(&total).Error; err != nil {
				return err
			}
			if total > 0 {
				return ErrIntegridadReferencial
			}
		}
		res := tx.Delete(&Maquina{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func (r *implRepository) CrearCluster(ctx context.Context, c Cluster) (Cluster, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Cluster{}, mapErrorPg(err)
	}
	return c, nil
}

func (r *implRepository) LeerCluster(ctx context.Context, id uint) (Cluster, error) {
	var c Cluster
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Cluster{}, ErrNoEncontrado
	}
	if err != nil {
		return Cluster{}, err
	}
	return c, nil
}

func (r *implRepository) ListarClusters(ctx context.Context, page, size int) ([]Cluster, error) {
	var clusters []Cluster
	err := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size).Find(&clusters).Error
	return clusters, err
}

func (r *implRepository) ActualizarCluster(ctx context.Context, c Cluster) (Cluster, error) {
	res := r.db.WithContext(ctx).Model(&Cluster{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"nombre":               c.Nombre,
			"descripcion":          c.Descripcion,
			"estado":               c.Estado,
			"fecha_modificacion":   c.FechaModificacion,
			"usuario_modificacion": c.UsuarioModificacion,
		})
	if res.Error != nil {
		return Cluster{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Cluster{}, ErrNoEncontrado
	}
	return c, nil
}

func (r *implRepository) ContarAsignacionesActivasCluster(ctx context.Context, id uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&AsignacionServidorMaquina{}).
		Where("id_cluster = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&total).Error
	return total, err
}

func (r *implRepository) EliminarCluster(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&AsignacionServidorMaquina{}).Where("id_cluster = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&Cluster{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func mapErrorPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicado
		case "23503":
			return ErrIntegridadReferencial
		}
	}
	return err
}
