package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config devuelve la variable de entorno `key`, cargando .env la primera vez.
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No se encontró .env, se usan variables de entorno del sistema")
		}
		loaded = true
	}
	return os.Getenv(key)
}
