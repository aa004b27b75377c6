package auditoria_log

import (
	"encoding/json"
	"fmt"
)

// SerializeData intenta convertir el payload a JSON; si falla, devuelve la
// representación formateada con fmt.
func SerializeData(data interface{}) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}

	return string(raw)
}
