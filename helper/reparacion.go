package helper

import (
	"errors"
	"strings"
	"time"

	"taller_manager/constants"
	"taller_manager/model"

	"gorm.io/gorm"
)

// Errores del ciclo de vida de una reparación.
var (
	ErrReparacionNoEncontrada = errors.New("reparacion no encontrada")
	ErrYaPagada               = errors.New("la reparacion ya esta pagada")
	ErrSinPrecio              = errors.New("la reparacion no tiene precio asignado")
	ErrMetodoPagoInvalido     = errors.New("metodo de pago vacio")
)

// MarcarPagada pasa el estado de pago de PENDIENTE a PAGADO. PAGADO es
// terminal: una segunda llamada devuelve ErrYaPagada sin tocar fecha ni
// método. El estado de pago se relee aquí mismo, justo antes de escribir.
func MarcarPagada(db *gorm.DB, reparacionId uint, metodoPago string) (*model.Reparacion, error) {
	var reparacion model.Reparacion
	if err := db.First(&reparacion, reparacionId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReparacionNoEncontrada
		}
		return nil, err
	}

	if reparacion.EstadoPago == constants.PAGO_PAGADO {
		return &reparacion, ErrYaPagada
	}
	if reparacion.Precio == nil || *reparacion.Precio <= 0 {
		return &reparacion, ErrSinPrecio
	}
	if strings.TrimSpace(metodoPago) == "" {
		return &reparacion, ErrMetodoPagoInvalido
	}

	now := time.Now()
	updates := map[string]interface{}{
		"estado_pago": constants.PAGO_PAGADO,
		"fecha_pago":  now,
		"metodo_pago": metodoPago,
	}
	if err := db.Model(&model.Reparacion{DTO: model.DTO{ID: reparacion.ID}}).Updates(updates).Error; err != nil {
		return &reparacion, err
	}

	reparacion.EstadoPago = constants.PAGO_PAGADO
	reparacion.FechaPago = &now
	reparacion.MetodoPago = &metodoPago
	return &reparacion, nil
}

// BorrarReparacion elimina una reparación. Las pagadas no se pueden borrar.
func BorrarReparacion(db *gorm.DB, reparacionId uint) error {
	var reparacion model.Reparacion
	if err := db.First(&reparacion, reparacionId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReparacionNoEncontrada
		}
		return err
	}

	if reparacion.EstadoPago == constants.PAGO_PAGADO {
		return ErrYaPagada
	}

	return db.Delete(&model.Reparacion{}, reparacionId).Error
}

// ContarActividad clasifica las reparaciones en activas y cerradas. Solo
// Terminado y Entregado cuentan como cerradas; cualquier otro estado es activo.
func ContarActividad(reparaciones []model.Reparacion) (activas, cerradas int64) {
	for _, r := range reparaciones {
		switch r.Estado {
		case constants.ESTADO_TERMINADO, constants.ESTADO_ENTREGADO:
			cerradas++
		default:
			activas++
		}
	}
	return activas, cerradas
}

// GetReparacionConCliente carga una reparación junto con su cliente.
func GetReparacionConCliente(db *gorm.DB, reparacionId uint) (*model.Reparacion, error) {
	var reparacion model.Reparacion
	if err := db.Preload("Cliente").First(&reparacion, reparacionId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReparacionNoEncontrada
		}
		return nil, err
	}
	return &reparacion, nil
}
