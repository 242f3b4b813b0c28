package handler

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
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

func sembrarReparacion(t *testing.T, db *gorm.DB, emailCliente string, precio *float64) *model.Reparacion {
	t.Helper()
	cliente := model.Cliente{Nombre: "Carlos Ruiz", Telefono: "600333444", Email: emailCliente}
	if err := db.Create(&cliente).Error; err != nil {
		t.Fatalf("no se pudo crear el cliente: %v", err)
	}
	rep := model.Reparacion{
		ClienteId:     cliente.ID,
		Dispositivo:   "Samsung Galaxy S21",
		Descripcion:   "No carga",
		Estado:        constants.ESTADO_TERMINADO,
		FechaEntrada:  time.Now(),
		Precio:        precio,
		EstadoPago:    constants.PAGO_PENDIENTE,
		CodigoPublico: fmt.Sprintf("REP-pago%d", atomic.AddUint64(&codigoSeq, 1)),
	}
	if err := db.Create(&rep).Error; err != nil {
		t.Fatalf("no se pudo crear la reparación: %v", err)
	}
	return &rep
}

func TestMontoCentimos(t *testing.T) {
	casos := []struct {
		precio float64
		want   int64
	}{
		{19.99, 1999},
		{100, 10000},
		{0.1, 10},
		{33.335, 3334}, // redondeo al céntimo más cercano
		{0.005, 1},
	}
	for _, c := range casos {
		if got := MontoCentimos(c.precio); got != c.want {
			t.Errorf("MontoCentimos(%v) = %d, se esperaba %d", c.precio, got, c.want)
		}
	}
}

func TestValidarPagoPublicoEmailInvalido(t *testing.T) {
	db := newTestDB(t)
	precio := 19.99
	rep := sembrarReparacion(t, db, "carlos@example.com", &precio)

	for _, email := range []string{"", "   ", "sin-arroba"} {
		if _, _, err := ValidarPagoPublico(db, rep.ID, email, true); !errors.Is(err, ErrEmailInvalido) {
			t.Errorf("email %q: err = %v, se esperaba ErrEmailInvalido", email, err)
		}
	}
}

func TestValidarPagoPublicoNoEncontrada(t *testing.T) {
	db := newTestDB(t)

	if _, _, err := ValidarPagoPublico(db, 9999, "carlos@example.com", true); !errors.Is(err, helper.ErrReparacionNoEncontrada) {
		t.Errorf("err = %v, se esperaba ErrReparacionNoEncontrada", err)
	}
}

func TestValidarPagoPublicoYaPagada(t *testing.T) {
	db := newTestDB(t)
	precio := 50.0
	rep := sembrarReparacion(t, db, "carlos@example.com", &precio)
	if _, err := helper.MarcarPagada(db, rep.ID, "Efectivo"); err != nil {
		t.Fatalf("no se pudo marcar pagada: %v", err)
	}

	if _, _, err := ValidarPagoPublico(db, rep.ID, "carlos@example.com", true); !errors.Is(err, helper.ErrYaPagada) {
		t.Errorf("err = %v, se esperaba ErrYaPagada", err)
	}
}

func TestValidarPagoPublicoImporteInvalido(t *testing.T) {
	db := newTestDB(t)

	sinPrecio := sembrarReparacion(t, db, "carlos@example.com", nil)
	if _, _, err := ValidarPagoPublico(db, sinPrecio.ID, "carlos@example.com", true); !errors.Is(err, ErrImporteInvalido) {
		t.Errorf("sin precio: err = %v, se esperaba ErrImporteInvalido", err)
	}

	cero := 0.0
	conCero := sembrarReparacion(t, db, "carlos2@example.com", &cero)
	if _, _, err := ValidarPagoPublico(db, conCero.ID, "carlos2@example.com", true); !errors.Is(err, ErrImporteInvalido) {
		t.Errorf("precio cero: err = %v, se esperaba ErrImporteInvalido", err)
	}
}

func TestValidarPagoPublicoClienteSinEmail(t *testing.T) {
	db := newTestDB(t)
	precio := 25.0
	rep := sembrarReparacion(t, db, "", &precio)

	if _, _, err := ValidarPagoPublico(db, rep.ID, "alguien@example.com", true); !errors.Is(err, ErrClienteSinEmail) {
		t.Errorf("err = %v, se esperaba ErrClienteSinEmail", err)
	}
}

func TestValidarPagoPublicoEmailNoCoincide(t *testing.T) {
	db := newTestDB(t)
	precio := 25.0
	rep := sembrarReparacion(t, db, "carlos@example.com", &precio)

	if _, _, err := ValidarPagoPublico(db, rep.ID, "otro@example.com", true); !errors.Is(err, ErrEmailNoCoincide) {
		t.Errorf("err = %v, se esperaba ErrEmailNoCoincide", err)
	}
}

func TestValidarPagoPublicoProcesadorSinConfigurar(t *testing.T) {
	db := newTestDB(t)
	precio := 25.0
	rep := sembrarReparacion(t, db, "carlos@example.com", &precio)

	if _, _, err := ValidarPagoPublico(db, rep.ID, "carlos@example.com", false); !errors.Is(err, ErrPagosNoDisponibles) {
		t.Errorf("err = %v, se esperaba ErrPagosNoDisponibles", err)
	}
}

func TestValidarPagoPublicoOk(t *testing.T) {
	db := newTestDB(t)
	precio := 19.99
	rep := sembrarReparacion(t, db, "Carlos@Example.COM", &precio)

	// La comparación de email no distingue mayúsculas.
	got, monto, err := ValidarPagoPublico(db, rep.ID, "carlos@example.com", true)
	if err != nil {
		t.Fatalf("err = %v, se esperaba nil", err)
	}
	if got.ID != rep.ID {
		t.Errorf("reparación devuelta = %d, se esperaba %d", got.ID, rep.ID)
	}
	if got.Cliente.Nombre == "" {
		t.Error("la reparación se devolvió sin el cliente cargado")
	}
	if monto != 1999 {
		t.Errorf("monto = %d céntimos, se esperaban 1999", monto)
	}
}
