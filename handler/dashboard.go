package handler

import (
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
)

type conteoEstado struct {
	Estado string `json:"estado"`
	Total  int64  `json:"total"`
}

type conteoDispositivo struct {
	Dispositivo string `json:"dispositivo"`
	Total       int64  `json:"total"`
}

// GetDashboard agrega los indicadores del panel: volumen de trabajo,
// actividad abierta/cerrada e ingresos cobrados.
func GetDashboard(c *fiber.Ctx) error {
	db := database.DB

	var totalClientes int64
	db.Model(&model.Cliente{}).Count(&totalClientes)

	var totalReparaciones int64
	db.Model(&model.Reparacion{}).Count(&totalReparaciones)

	var reparaciones model.Reparaciones
	db.Select("estado").Find(&reparaciones)
	activas, cerradas := helper.ContarActividad(reparaciones)

	var pagosPendientes int64
	db.Model(&model.Reparacion{}).
		Where("estado_pago = ? AND precio IS NOT NULL", constants.PAGO_PENDIENTE).
		Count(&pagosPendientes)

	// Ingresos: solo reparaciones cobradas, el precio pendiente no es ingreso.
	var ingresosTotales float64
	db.Model(&model.Reparacion{}).
		Where("estado_pago = ?", constants.PAGO_PAGADO).
		Select("COALESCE(SUM(precio), 0)").
		Scan(&ingresosTotales)

	inicioMes := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	var ingresosMes float64
	db.Model(&model.Reparacion{}).
		Where("estado_pago = ? AND fecha_pago >= ?", constants.PAGO_PAGADO, inicioMes).
		Select("COALESCE(SUM(precio), 0)").
		Scan(&ingresosMes)

	var porEstado []conteoEstado
	db.Model(&model.Reparacion{}).
		Select("estado, COUNT(*) as total").
		Group("estado").
		Order("total DESC").
		Scan(&porEstado)

	var topDispositivos []conteoDispositivo
	db.Model(&model.Reparacion{}).
		Select("dispositivo, COUNT(*) as total").
		Group("dispositivo").
		Order("total DESC").
		Limit(5).
		Scan(&topDispositivos)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalClientes":        totalClientes,
		"totalReparaciones":    totalReparaciones,
		"reparacionesActivas":  activas,
		"reparacionesCerradas": cerradas,
		"pagosPendientes":      pagosPendientes,
		"ingresosTotales":      ingresosTotales,
		"ingresosMes":          ingresosMes,
		"porEstado":            porEstado,
		"topDispositivos":      topDispositivos,
	})
}

// GetIngresosPorMes devuelve la serie de ingresos cobrados de los últimos
// doce meses para la gráfica del panel.
func GetIngresosPorMes(c *fiber.Ctx) error {
	db := database.DB

	type puntoMes struct {
		Mes     string  `json:"mes"`
		Importe float64 `json:"importe"`
	}

	desde := time.Now().AddDate(-1, 0, 0)

	var pagadas model.Reparaciones
	db.Where("estado_pago = ? AND fecha_pago >= ?", constants.PAGO_PAGADO, desde).
		Order("fecha_pago ASC").
		Find(&pagadas)

	// Agregación en memoria: el formato de truncado por mes difiere entre
	// postgres y sqlite y el volumen mensual de un taller es pequeño.
	porMes := make(map[string]float64)
	var orden []string
	for _, rep := range pagadas {
		if rep.FechaPago == nil || rep.Precio == nil {
			continue
		}
		clave := rep.FechaPago.Format("2006-01")
		if _, visto := porMes[clave]; !visto {
			orden = append(orden, clave)
		}
		porMes[clave] += *rep.Precio
	}

	serie := make([]puntoMes, 0, len(orden))
	for _, clave := range orden {
		serie = append(serie, puntoMes{Mes: clave, Importe: porMes[clave]})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serie)
}
