package database

import (
	"log"

	"taller_manager/constants"
	"taller_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("cambiar123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	usuarios := []model.Usuario{
		{Username: "admin", Password: hashPassword, Activo: true, Rol: constants.ROLE_ADMIN},
	}

	for _, usuario := range usuarios {
		if err := db.Where(model.Usuario{Username: usuario.Username}).FirstOrCreate(&usuario).Error; err != nil {
			log.Println("failed to seed data for usuario:", usuario.Username, "error:", err)
		}
	}
}
