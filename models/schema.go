package models

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type table struct {
	name  string
	model any
}

// allModels is every persisted model, parents before children so foreign
// keys resolve during migration.
var allModels = []table{
	{name: "users", model: &User{}},
	{name: "posts", model: &Post{}},
}

func modelValues() []any {
	values := make([]any, 0, len(allModels))
	for _, t := range allModels {
		values = append(values, t.model)
	}
	return values
}

// Migrate creates or updates the tables backing every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(modelValues()...)
}

// GenerateModels migrates with SQL logging on, reports column drift and
// writes typed query helpers for every model to outPath.
func GenerateModels(db *gorm.DB, outPath string, log zerolog.Logger) error {
	db = db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
	})

	log.Info().Int("tables", len(allModels)).Msg("migrating models")
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}
	if err := ReportColumnDrift(db, log); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(modelValues()...)
	g.Execute()

	log.Info().Str("out", outPath).Msg("query helpers generated")
	return nil
}

// ColumnDrift describes a table whose columns are not all mapped by its
// model. Missing is set when the table has not been created yet.
type ColumnDrift struct {
	Table    string
	Missing  bool
	Unmapped []string
}

// CheckColumns compares every model with the live schema.
func CheckColumns(db *gorm.DB) ([]ColumnDrift, error) {
	migrator := db.Migrator()
	var drift []ColumnDrift
	for _, t := range allModels {
		if !migrator.HasTable(t.model) {
			drift = append(drift, ColumnDrift{Table: t.name, Missing: true})
			continue
		}

		types, err := migrator.ColumnTypes(t.model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", t.name, err)
		}
		live := make([]string, 0, len(types))
		for _, ct := range types {
			live = append(live, ct.Name())
		}

		mapped, err := modelColumns(t.model)
		if err != nil {
			return nil, err
		}
		if extra := unmappedColumns(live, mapped); len(extra) > 0 {
			drift = append(drift, ColumnDrift{Table: t.name, Unmapped: extra})
		}
	}
	return drift, nil
}

// ReportColumnDrift logs the result of CheckColumns.
func ReportColumnDrift(db *gorm.DB, log zerolog.Logger) error {
	drift, err := CheckColumns(db)
	if err != nil {
		return err
	}

	total := 0
	for _, d := range drift {
		if d.Missing {
			log.Warn().Str("table", d.Table).Msg("table does not exist yet")
			continue
		}
		total += len(d.Unmapped)
		log.Warn().Str("table", d.Table).Strs("columns", d.Unmapped).Msg("columns not mapped by model")
	}
	log.Info().Int("tables", len(allModels)).Int("unmapped", total).Msg("column check finished")
	return nil
}

// modelColumns returns the column names gorm maps for model.
func modelColumns(model any) ([]string, error) {
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return s.DBNames, nil
}

func unmappedColumns(live, mapped []string) []string {
	var extra []string
	for _, col := range live {
		if !slices.Contains(mapped, col) {
			extra = append(extra, col)
		}
	}
	return extra
}
