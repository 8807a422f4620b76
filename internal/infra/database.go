package infra

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate for
// the subsystem's tables, then applies the DDL that AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.SesionCaja{},
		&model.PagoVenta{},
		&model.MovimientoManual{},
		&model.Devolucion{},
		&model.ConfiguracionImpuesto{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// SeedTasas inserts the tax-rate configuration row from the environment when
// the table is empty. Existing rows are left untouched — the row is the source
// of truth once present, and zero/invalid values in it fall back to the service
// defaults at read time.
func SeedTasas(db *gorm.DB, isv, isvAlterna, turismo float64) error {
	var count int64
	if err := db.Model(&model.ConfiguracionImpuesto{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&model.ConfiguracionImpuesto{
		ID:             1,
		TasaISV:        decimal.NewFromFloat(isv),
		TasaISVAlterna: decimal.NewFromFloat(isvAlterna),
		TasaTurismo:    decimal.NewFromFloat(turismo),
	}).Error
}

// applySchemaPatches runs idempotent DDL that GORM cannot express. The partial
// unique index closes the check-then-insert race on session open: even if two
// concurrent requests pass the FindSesionAbierta check, only one insert with
// estado='abierta' per operator can succeed.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_sesion_caja_operador_abierta
		     ON sesion_cajas (operador)
		     WHERE estado = 'abierta'`,
		`CREATE INDEX IF NOT EXISTS idx_pago_ventas_operador_fecha
		     ON pago_ventas (operador, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_movimiento_manuals_operador_fecha
		     ON movimiento_manuals (operador, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_devolucions_operador_fecha
		     ON devolucions (operador, created_at)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
