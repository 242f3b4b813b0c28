package helper

import (
	"fmt"
	"log"
	"os"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/go-co-op/gocron/v2"
)

var recordatorioScheduler gocron.Scheduler

// EnviarRecordatoriosPago busca reparaciones terminadas sin pagar desde hace
// más de 3 días y avisa al cliente por email.
func EnviarRecordatoriosPago() {
	log.Println("[CRON] EnviarRecordatoriosPago triggered")

	db := database.DB
	limite := time.Now().AddDate(0, 0, -3)

	var reparaciones []model.Reparacion
	if err := db.Preload("Cliente").
		Where("estado = ? AND estado_pago = ? AND updated_at < ?",
			constants.ESTADO_TERMINADO, constants.PAGO_PENDIENTE, limite).
		Find(&reparaciones).Error; err != nil {
		log.Printf("Error al buscar reparaciones pendientes de pago: %v", err)
		return
	}

	for _, rep := range reparaciones {
		if rep.Cliente.Email == "" || rep.Precio == nil {
			continue
		}
		seguimiento := fmt.Sprintf("%s/seguimiento/%s", os.Getenv("APP_URL"), rep.CodigoPublico)
		utils.SendRecordatorioPagoEmail(rep.Cliente.Email, utils.RecordatorioPagoData{
			ReparacionId:   rep.ID,
			ClienteNombre:  rep.Cliente.Nombre,
			Dispositivo:    rep.Dispositivo,
			Importe:        *rep.Precio,
			SeguimientoUrl: seguimiento,
		})
	}

	if len(reparaciones) > 0 {
		log.Printf("Enviados %d recordatorios de pago", len(reparaciones))
	}
}

func StartRecordatorioScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		log.Fatal(err)
	}

	recordatorioScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(9, 0, 0),
			),
		),
		gocron.NewTask(EnviarRecordatoriosPago),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Scheduler de recordatorios de pago iniciado (09:00)")
}

func StopRecordatorioScheduler() {
	if recordatorioScheduler != nil {
		_ = recordatorioScheduler.Shutdown()
	}
}
