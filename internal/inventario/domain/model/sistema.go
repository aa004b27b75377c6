package model

type Sistema struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Codigo      string `gorm:"type:varchar(50);not null;unique" json:"codigo"`
	Nombre      string `gorm:"type:varchar(255);not null" json:"nombre"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Registro
}

func (Sistema) TableName() string {
	return "sistemas"
}

// Entidad es la unidad organizacional dueña dentro de un sistema.
type Entidad struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	IDSistema uint   `gorm:"column:id_sistema;not null;index" json:"id_sistema"`
	Nombre    string `gorm:"type:varchar(255);not null" json:"nombre"`
	Sigla     string `gorm:"type:varchar(50)" json:"sigla"`
	Registro

	Sistema *Sistema `gorm:"foreignKey:IDSistema" json:"-"`
}

func (Entidad) TableName() string {
	return "entidades"
}

// Componente es una pieza desplegable de un sistema (api, frontend, worker).
type Componente struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	IDSistema   uint   `gorm:"column:id_sistema;not null;index" json:"id_sistema"`
	Nombre      string `gorm:"type:varchar(255);not null" json:"nombre"`
	Tecnologia  string `gorm:"type:varchar(100)" json:"tecnologia"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Registro

	Sistema *Sistema `gorm:"foreignKey:IDSistema" json:"-"`
}

func (Componente) TableName() string {
	return "componentes"
}
