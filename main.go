// @title        SistemaInfra API
// @version      1.0
// @description  Inventario de infraestructura de TI con auditoría de cambios.
// @BasePath     /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"github.com/Americo7/SistemaInfra-2-sub002/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
