package model

type DataCenter struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nombre    string `gorm:"type:varchar(255);not null;unique" json:"nombre"`
	Ubicacion string `gorm:"type:varchar(255)" json:"ubicacion"`
	Registro
}

func (DataCenter) TableName() string {
	return "data_centers"
}

type Hardware struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	IDDataCenter uint   `gorm:"column:id_data_center;not null;index" json:"id_data_center"`
	Marca        string `gorm:"type:varchar(100)" json:"marca"`
	Modelo       string `gorm:"type:varchar(100)" json:"modelo"`
	Serie        string `gorm:"type:varchar(100);not null;unique" json:"serie"`
	Registro

	DataCenter *DataCenter `gorm:"foreignKey:IDDataCenter" json:"-"`
}

func (Hardware) TableName() string {
	return "hardwares"
}

type Servidor struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	IDHardware uint   `gorm:"column:id_hardware;not null;index" json:"id_hardware"`
	Nombre     string `gorm:"type:varchar(255);not null" json:"nombre"`
	Registro

	Hardware *Hardware `gorm:"foreignKey:IDHardware" json:"-"`
}

func (Servidor) TableName() string {
	return "servidores"
}

type Maquina struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Nombre           string `gorm:"type:varchar(255);not null" json:"nombre"`
	IP               string `gorm:"type:varchar(45)" json:"ip"`
	SistemaOperativo string `gorm:"column:sistema_operativo;type:varchar(100)" json:"sistema_operativo"`
	Registro
}

func (Maquina) TableName() string {
	return "maquinas"
}

// ServidorMaquina relaciona servidores físicos con las máquinas que alojan.
// La tupla (id_servidor, id_maquina) es única mientras esté ACTIVO.
type ServidorMaquina struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	IDServidor uint `gorm:"column:id_servidor;not null;index" json:"id_servidor"`
	IDMaquina  uint `gorm:"column:id_maquina;not null;index" json:"id_maquina"`
	Registro

	Servidor *Servidor `gorm:"foreignKey:IDServidor" json:"-"`
	Maquina  *Maquina  `gorm:"foreignKey:IDMaquina" json:"-"`
}

func (ServidorMaquina) TableName() string {
	return "servidores_maquinas"
}

type Cluster struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nombre      string `gorm:"type:varchar(255);not null;unique" json:"nombre"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Registro
}

func (Cluster) TableName() string {
	return "clusters"
}

// AsignacionServidorMaquina asocia un par servidor+máquina a un cluster.
// La tupla (id_cluster, id_servidor, id_maquina) es única mientras esté ACTIVO.
type AsignacionServidorMaquina struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	IDCluster  uint `gorm:"column:id_cluster;not null;index" json:"id_cluster"`
	IDServidor uint `gorm:"column:id_servidor;not null;index" json:"id_servidor"`
	IDMaquina  uint `gorm:"column:id_maquina;not null;index" json:"id_maquina"`
	Registro

	Cluster  *Cluster  `gorm:"foreignKey:IDCluster" json:"-"`
	Servidor *Servidor `gorm:"foreignKey:IDServidor" json:"-"`
	Maquina  *Maquina  `gorm:"foreignKey:IDMaquina" json:"-"`
}

func (AsignacionServidorMaquina) TableName() string {
	return "asignaciones_servidor_maquina"
}
