package helper

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("no se pudo obtener el pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	database.Migrate(db)
	return db
}

var codigoSeq uint64

func crearReparacion(t *testing.T, db *gorm.DB, precio *float64) *model.Reparacion {
	t.Helper()
	cliente := model.Cliente{Nombre: "Laura Gómez", Telefono: "600111222", Email: "laura@example.com"}
	if err := db.Create(&cliente).Error; err != nil {
		t.Fatalf("no se pudo crear el cliente: %v", err)
	}
	rep := model.Reparacion{
		ClienteId:     cliente.ID,
		Dispositivo:   "iPhone 12",
		Descripcion:   "Pantalla rota",
		Estado:        constants.ESTADO_TERMINADO,
		FechaEntrada:  time.Now(),
		Precio:        precio,
		EstadoPago:    constants.PAGO_PENDIENTE,
		CodigoPublico: fmt.Sprintf("REP-test%d", atomic.AddUint64(&codigoSeq, 1)),
	}
	if err := db.Create(&rep).Error; err != nil {
		t.Fatalf("no se pudo crear la reparación: %v", err)
	}
	return &rep
}

func TestMarcarPagada(t *testing.T) {
	db := newTestDB(t)
	precio := 49.90
	rep := crearReparacion(t, db, &precio)

	pagada, err := MarcarPagada(db, rep.ID, "Efectivo")
	if err != nil {
		t.Fatalf("MarcarPagada devolvió error: %v", err)
	}
	if pagada.EstadoPago != constants.PAGO_PAGADO {
		t.Errorf("estado de pago = %q, se esperaba %q", pagada.EstadoPago, constants.PAGO_PAGADO)
	}
	if pagada.FechaPago == nil {
		t.Error("la fecha de pago no se registró")
	}
	if pagada.MetodoPago == nil || *pagada.MetodoPago != "Efectivo" {
		t.Errorf("método de pago = %v, se esperaba Efectivo", pagada.MetodoPago)
	}

	var guardada model.Reparacion
	if err := db.First(&guardada, rep.ID).Error; err != nil {
		t.Fatalf("no se pudo releer la reparación: %v", err)
	}
	if guardada.EstadoPago != constants.PAGO_PAGADO {
		t.Errorf("estado persistido = %q, se esperaba PAGADO", guardada.EstadoPago)
	}
}

func TestMarcarPagadaDosVeces(t *testing.T) {
	db := newTestDB(t)
	precio := 120.0
	rep := crearReparacion(t, db, &precio)

	primera, err := MarcarPagada(db, rep.ID, "Efectivo")
	if err != nil {
		t.Fatalf("primer marcado falló: %v", err)
	}

	// La segunda llamada no debe tocar ni la fecha ni el método originales.
	_, err = MarcarPagada(db, rep.ID, "Transferencia")
	if !errors.Is(err, ErrYaPagada) {
		t.Fatalf("segundo marcado devolvió %v, se esperaba ErrYaPagada", err)
	}

	var guardada model.Reparacion
	db.First(&guardada, rep.ID)
	if guardada.MetodoPago == nil || *guardada.MetodoPago != "Efectivo" {
		t.Errorf("el método original cambió a %v", guardada.MetodoPago)
	}
	if guardada.FechaPago == nil || !guardada.FechaPago.Equal(*primera.FechaPago) {
		t.Errorf("la fecha de pago original cambió: %v != %v", guardada.FechaPago, primera.FechaPago)
	}
}

func TestMarcarPagadaSinPrecio(t *testing.T) {
	db := newTestDB(t)

	rep := crearReparacion(t, db, nil)
	if _, err := MarcarPagada(db, rep.ID, "Efectivo"); !errors.Is(err, ErrSinPrecio) {
		t.Errorf("sin precio: err = %v, se esperaba ErrSinPrecio", err)
	}

	cero := 0.0
	rep2 := crearReparacion(t, db, &cero)
	if _, err := MarcarPagada(db, rep2.ID, "Efectivo"); !errors.Is(err, ErrSinPrecio) {
		t.Errorf("precio cero: err = %v, se esperaba ErrSinPrecio", err)
	}

	var guardada model.Reparacion
	db.First(&guardada, rep.ID)
	if guardada.EstadoPago != constants.PAGO_PENDIENTE {
		t.Errorf("el estado de pago cambió a %q tras un marcado rechazado", guardada.EstadoPago)
	}
}

func TestMarcarPagadaMetodoVacio(t *testing.T) {
	db := newTestDB(t)
	precio := 30.0
	rep := crearReparacion(t, db, &precio)

	if _, err := MarcarPagada(db, rep.ID, "   "); !errors.Is(err, ErrMetodoPagoInvalido) {
		t.Errorf("método en blanco: err = %v, se esperaba ErrMetodoPagoInvalido", err)
	}
}

func TestMarcarPagadaNoEncontrada(t *testing.T) {
	db := newTestDB(t)

	if _, err := MarcarPagada(db, 9999, "Efectivo"); !errors.Is(err, ErrReparacionNoEncontrada) {
		t.Errorf("id inexistente: err = %v, se esperaba ErrReparacionNoEncontrada", err)
	}
}

func TestBorrarReparacion(t *testing.T) {
	db := newTestDB(t)
	precio := 75.0

	pendiente := crearReparacion(t, db, &precio)
	if err := BorrarReparacion(db, pendiente.ID); err != nil {
		t.Fatalf("no se pudo borrar una reparación pendiente: %v", err)
	}
	var count int64
	db.Model(&model.Reparacion{}).Where("id = ?", pendiente.ID).Count(&count)
	if count != 0 {
		t.Error("la reparación pendiente sigue en la base de datos")
	}

	pagadaRep := crearReparacion(t, db, &precio)
	if _, err := MarcarPagada(db, pagadaRep.ID, "Efectivo"); err != nil {
		t.Fatalf("no se pudo marcar pagada: %v", err)
	}
	if err := BorrarReparacion(db, pagadaRep.ID); !errors.Is(err, ErrYaPagada) {
		t.Fatalf("borrar pagada devolvió %v, se esperaba ErrYaPagada", err)
	}
	db.Model(&model.Reparacion{}).Where("id = ?", pagadaRep.ID).Count(&count)
	if count != 1 {
		t.Error("la reparación pagada fue eliminada")
	}

	if err := BorrarReparacion(db, 9999); !errors.Is(err, ErrReparacionNoEncontrada) {
		t.Errorf("borrar inexistente devolvió %v, se esperaba ErrReparacionNoEncontrada", err)
	}
}

func TestContarActividad(t *testing.T) {
	reps := []model.Reparacion{
		{Estado: constants.ESTADO_PENDIENTE},
		{Estado: constants.ESTADO_EN_CURSO},
		{Estado: constants.ESTADO_TERMINADO},
		{Estado: constants.ESTADO_ENTREGADO},
		{Estado: "Esperando pieza"}, // estado libre: cuenta como activa
	}

	activas, cerradas := ContarActividad(reps)
	if activas != 3 {
		t.Errorf("activas = %d, se esperaban 3", activas)
	}
	if cerradas != 2 {
		t.Errorf("cerradas = %d, se esperaban 2", cerradas)
	}

	activas, cerradas = ContarActividad(nil)
	if activas != 0 || cerradas != 0 {
		t.Errorf("lista vacía: activas=%d cerradas=%d, se esperaba 0/0", activas, cerradas)
	}
}
