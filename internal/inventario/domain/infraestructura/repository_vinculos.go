package infraestructura

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/transaccion"
	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// VincularServidorMaquina aplica la regla de tupla única activa sobre
// (id_servidor, id_maquina): si existe la tupla ACTIVA devuelve
// ErrVinculoActivo; si existe INACTIVA reactiva la misma fila conservando su
// id; si no existe crea una nueva.
func (r *implRepository) VincularServidorMaquina(ctx context.Context, v ServidorMaquina) (ServidorMaquina, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := referenciaActiva(tx, &Servidor{}, v.IDServidor); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &Maquina{}, v.IDMaquina); err != nil {
			return err
		}

		var existente ServidorMaquina
		err := tx.Where("id_servidor = ? AND id_maquina = ?", v.IDServidor, v.IDMaquina).
			Order("id DESC").First(&existente).Error
		switch {
		case err == nil && existente.Estado == inventario.EstadoActivo:
			return ErrVinculoActivo
		case err == nil:
			existente.Estado = inventario.EstadoActivo
			existente.MarcarModificacion(v.UsuarioCreacion)
			if err := tx.Model(&ServidorMaquina{}).Where("id = ?", existente.ID).
				Updates(map[string]interface{}{
					"estado":               existente.Estado,
					"fecha_modificacion":   existente.FechaModificacion,
					"usuario_modificacion": existente.UsuarioModificacion,
				}).Error; err != nil {
				return err
			}
			v = existente
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&v).Error
		default:
			return err
		}
	})
	if err != nil {
		return ServidorMaquina{}, mapErrorPg(err)
	}
	return v, nil
}

func (r *implRepository) DesvincularServidorMaquina(ctx context.Context, id uint, actor uint) (ServidorMaquina, error) {
	var v ServidorMaquina
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.First(&v, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		if err != nil {
			return err
		}
		if v.Estado == inventario.EstadoInactivo {
			return nil
		}
		// El par servidor+máquina no puede soltarse mientras una asignación
		// de cluster activa lo use.
		var asignaciones int64
		if err := tx.Model(&AsignacionServidorMaquina{}).
			Where("id_servidor = ? AND id_maquina = ? AND estado = ?",
				v.IDServidor, v.IDMaquina, inventario.EstadoActivo).
			Count(&asignaciones).Error; err != nil {
			return err
		}
		if asignaciones > 0 {
			return ErrVinculosActivos
		}
		v.Estado = inventario.EstadoInactivo
		v.MarcarModificacion(actor)
		return tx.Model(&ServidorMaquina{}).Where("id = ?", v.ID).
			Updates(map[string]interface{}{
				"estado":               v.Estado,
				"fecha_modificacion":   v.FechaModificacion,
				"usuario_modificacion": v.UsuarioModificacion,
			}).Error
	})
	if err != nil {
		return ServidorMaquina{}, err
	}
	return v, nil
}

func (r *implRepository) ListarVinculos(ctx context.Context, idServidor, idMaquina uint) ([]ServidorMaquina, error) {
	var vinculos []ServidorMaquina
	q := r.db.WithContext(ctx).Order("id ASC")
	if idServidor != 0 {
		q = q.Where("id_servidor = ?", idServidor)
	}
	if idMaquina != 0 {
		q = q.Where("id_maquina = ?", idMaquina)
	}
	err := q.Find(&vinculos).Error
	return vinculos, err
}

// AsignarCluster replica la regla de tupla única activa sobre
// (id_cluster, id_servidor, id_maquina). Exige además que el par
// servidor+máquina esté vinculado y ACTIVO.
func (r *implRepository) AsignarCluster(ctx context.Context, a AsignacionServidorMaquina) (AsignacionServidorMaquina, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := referenciaActiva(tx, &Cluster{}, a.IDCluster); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &Servidor{}, a.IDServidor); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &Maquina{}, a.IDMaquina); err != nil {
			return err
		}
		var vinculo int64
		if err := tx.Model(&ServidorMaquina{}).
			Where("id_servidor = ? AND id_maquina = ? AND estado = ?",
				a.IDServidor, a.IDMaquina, inventario.EstadoActivo).
			Count(&vinculo).Error; err != nil {
			return err
		}
		if vinculo == 0 {
			return ErrReferenciaInactiva
		}

		var existente AsignacionServidorMaquina
		err := tx.Where("id_cluster = ? AND id_servidor = ? AND id_maquina = ?",
			a.IDCluster, a.IDServidor, a.IDMaquina).
			Order("id DESC").First(&existente).Error
		switch {
		case err == nil && existente.Estado == inventario.EstadoActivo:
			return ErrVinculoActivo
		case err == nil:
			existente.Estado = inventario.EstadoActivo
			existente.MarcarModificacion(a.UsuarioCreacion)
			if err := tx.Model(&AsignacionServidorMaquina{}).Where("id = ?", existente.ID).
				Updates(map[string]interface{}{
					"estado":               existente.Estado,
					"fecha_modificacion":   existente.FechaModificacion,
					"usuario_modificacion": existente.UsuarioModificacion,
				}).Error; err != nil {
				return err
			}
			a = existente
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&a).Error
		default:
			return err
		}
	})
	if err != nil {
		return AsignacionServidorMaquina{}, mapErrorPg(err)
	}
	return a, nil
}

func (r *implRepository) DesasignarCluster(ctx context.Context, id uint, actor uint) (AsignacionServidorMaquina, error) {
	var a AsignacionServidorMaquina
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		if err != nil {
			return err
		}
		if a.Estado == inventario.EstadoInactivo {
			return nil
		}
		a.Estado = inventario.EstadoInactivo
		a.MarcarModificacion(actor)
		return tx.Model(&AsignacionServidorMaquina{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{
				"estado":               a.Estado,
				"fecha_modificacion":   a.FechaModificacion,
				"usuario_modificacion": a.UsuarioModificacion,
			}).Error
	})
	if err != nil {
		return AsignacionServidorMaquina{}, err
	}
	return a, nil
}

func (r *implRepository) ListarAsignaciones(ctx context.Context, idCluster uint) ([]AsignacionServidorMaquina, error) {
	var asignaciones []AsignacionServidorMaquina
	q := r.db.WithContext(ctx).Order("id ASC")
	if idCluster != 0 {
		q = q.Where("id_cluster = ?", idCluster)
	}
	err := q.Find(&asignaciones).Error
	return asignaciones, err
}
