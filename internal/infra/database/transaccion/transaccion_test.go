package transaccion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type filaPrueba struct {
	ID    uint   `gorm:"primaryKey"`
	Valor string `gorm:"type:varchar(50)"`
}

func abrirBase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&filaPrueba{}))
	return db
}

func TestEjecutarConfirmaAlTerminarSinError(t *testing.T) {
	db := abrirBase(t)

	err := Ejecutar(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Create(&filaPrueba{Valor: "a"}).Error
	})
	require.NoError(t, err)

	var total int64
	require.NoError(t, db.Model(&filaPrueba{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestEjecutarRevierteAnteError(t *testing.T) {
	db := abrirBase(t)
	falla := errors.New("falla simulada")

	err := Ejecutar(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&filaPrueba{Valor: "b"}).Error; err != nil {
			return err
		}
		return falla
	})
	require.ErrorIs(t, err, falla)

	var total int64
	require.NoError(t, db.Model(&filaPrueba{}).Count(&total).Error)
	assert.Equal(t, int64(0), total, "el rollback debe descartar la fila")
}

func TestEnvolverFallaAlmacen(t *testing.T) {
	err := EnvolverFallaAlmacen("crear evento", errors.New("conexión perdida"))
	assert.ErrorIs(t, err, ErrTransaccion)
	assert.Contains(t, err.Error(), "crear evento")
}
