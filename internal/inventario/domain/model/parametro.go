package model

// Parametro es el catálogo de códigos parametrizables del sistema.
// Los códigos de tipo de evento y de tipo de respaldo se validan contra
// este catálogo (grupos TIPO_EVENTO y TIPO_RESPALDO).
type Parametro struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Grupo       string `gorm:"type:varchar(100);not null;uniqueIndex:idx_parametros_grupo_codigo" json:"grupo"`
	Codigo      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_parametros_grupo_codigo" json:"codigo"`
	Nombre      string `gorm:"type:varchar(255);not null" json:"nombre"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Registro
}

func (Parametro) TableName() string {
	return "parametros"
}

// Grupos de parámetros conocidos por la aplicación.
const (
	GrupoTipoEvento   = "TIPO_EVENTO"
	GrupoTipoRespaldo = "TIPO_RESPALDO"
)
