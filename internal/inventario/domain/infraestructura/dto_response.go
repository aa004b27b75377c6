package infraestructura

import "time"

type DataCenterResponseDto struct {
	ID            uint      `json:"id"`
	Nombre        string    `json:"nombre"`
	Ubicacion     string    `json:"ubicacion"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type HardwareResponseDto struct {
	ID            uint      `json:"id"`
	IDDataCenter  uint      `json:"id_data_center"`
	Marca         string    `json:"marca"`
	Modelo        string    `json:"modelo"`
	Serie         string    `json:"serie"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type ServidorResponseDto struct {
	ID            uint      `json:"id"`
	IDHardware    uint      `json:"id_hardware"`
	Nombre        string    `json:"nombre"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type MaquinaResponseDto struct {
	ID               uint      `json:"id"`
	Nombre           string    `json:"nombre"`
	IP               string    `json:"ip"`
	SistemaOperativo string    `json:"sistema_operativo"`
	Estado           string    `json:"estado"`
	FechaCreacion    time.Time `json:"fecha_creacion"`
}

type ClusterResponseDto struct {
	ID            uint      `json:"id"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type VinculoResponseDto struct {
	ID            uint      `json:"id"`
	IDServidor    uint      `json:"id_servidor"`
	IDMaquina     uint      `json:"id_maquina"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type AsignacionResponseDto struct {
	ID            uint      `json:"id"`
	IDCluster     uint      `json:"id_cluster"`
	IDServidor    uint      `json:"id_servidor"`
	IDMaquina     uint      `json:"id_maquina"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

func ToDataCenterResponse(d DataCenter) DataCenterResponseDto {
	return DataCenterResponseDto{ID: d.ID, Nombre: d.Nombre, Ubicacion: d.Ubicacion, Estado: d.Estado, FechaCreacion: d.FechaCreacion}
}

func ToHardwareResponse(h Hardware) HardwareResponseDto {
	return HardwareResponseDto{ID: h.ID, IDDataCenter: h.IDDataCenter, Marca: h.Marca, Modelo: h.Modelo, Serie: h.Serie, Estado: h.Estado, FechaCreacion: h.FechaCreacion}
}

func ToServidorResponse(s Servidor) ServidorResponseDto {
	return ServidorResponseDto{ID: s.ID, IDHardware: s.IDHardware, Nombre: s.Nombre, Estado: s.Estado, FechaCreacion: s.FechaCreacion}
}

func ToMaquinaResponse(m Maquina) MaquinaResponseDto {
	return MaquinaResponseDto{ID: m.ID, Nombre: m.Nombre, IP: m.IP, SistemaOperativo: m.SistemaOperativo, Estado: m.Estado, FechaCreacion: m.FechaCreacion}
}

func ToClusterResponse(c Cluster) ClusterResponseDto {
	return ClusterResponseDto{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion, Estado: c.Estado, FechaCreacion: c.FechaCreacion}
}

func ToVinculoResponse(v ServidorMaquina) VinculoResponseDto {
	return VinculoResponseDto{ID: v.ID, IDServidor: v.IDServidor, IDMaquina: v.IDMaquina, Estado: v.Estado, FechaCreacion: v.FechaCreacion}
}

func ToAsignacionResponse(a AsignacionServidorMaquina) AsignacionResponseDto {
	return AsignacionResponseDto{ID: a.ID, IDCluster: a.IDCluster, IDServidor: a.IDServidor, IDMaquina: a.IDMaquina, Estado: a.Estado, FechaCreacion: a.FechaCreacion}
}
