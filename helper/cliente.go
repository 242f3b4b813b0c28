package helper

import (
	"errors"

	"taller_manager/model"

	"gorm.io/gorm"
)

func CheckByTelefonoCliente(db *gorm.DB, telefono string, id *uint) (bool, error) {
	var count int64
	if id == nil {
		if err := db.Model(&model.Cliente{}).Where(model.Cliente{Telefono: telefono}).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	if id != nil {
		if err := db.Model(&model.Cliente{}).Where("telefono = ? and id != ?", telefono, *id).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	return count > 0, nil
}

func GetClienteByTelefono(db *gorm.DB, telefono string) (*model.Cliente, error) {
	var cliente model.Cliente
	if err := db.Where(&model.Cliente{Telefono: telefono}).First(&cliente).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cliente, nil
}
