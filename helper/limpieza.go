package helper

import (
	"log"
	"time"

	"taller_manager/database"
	"taller_manager/model"

	"github.com/robfig/cron/v3"
)

var limpiezaScheduler *cron.Cron

func StartLimpiezaScheduler() {
	limpiezaScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Cada hora basta para los tokens caducados
	_, err := limpiezaScheduler.AddFunc("@hourly", limpiarTokensCaducados)
	if err != nil {
		log.Printf("Error al iniciar scheduler de limpieza: %v", err)
		return
	}

	limpiezaScheduler.Start()
	log.Println("Scheduler de limpieza iniciado (cada hora)")
}

func limpiarTokensCaducados() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("Error al limpiar tokens caducados: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Eliminados %d tokens de restablecimiento caducados", result.RowsAffected)
	}
}

func StopLimpiezaScheduler() {
	if limpiezaScheduler != nil {
		limpiezaScheduler.Stop()
	}
}
