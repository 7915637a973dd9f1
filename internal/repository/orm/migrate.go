package orm

import (
	"fmt"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/model"
)

// MigrateOptions controls optional schema objects
type MigrateOptions struct {
	// BMITrigger installs a trigger that derives anthropometries.bmi
	BMITrigger bool
}

var sqliteBMITrigger = []string{
	`CREATE TRIGGER IF NOT EXISTS anthropometries_bmi_insert
AFTER INSERT ON anthropometries
BEGIN
  UPDATE anthropometries
     SET bmi = CASE WHEN NEW.weight > 0 AND NEW.height > 0
                    THEN ROUND(NEW.weight / (NEW.height * NEW.height), 2) END
   WHERE id = NEW.id;
END`,
	`CREATE TRIGGER IF NOT EXISTS anthropometries_bmi_update
AFTER UPDATE OF weight, height ON anthropometries
BEGIN
  UPDATE anthropometries
     SET bmi = CASE WHEN NEW.weight > 0 AND NEW.height > 0
                    THEN ROUND(NEW.weight / (NEW.height * NEW.height), 2) END
   WHERE id = NEW.id;
END`,
}

var postgresBMITrigger = []string{
	`CREATE OR REPLACE FUNCTION compute_anthropometry_bmi() RETURNS trigger AS $$
BEGIN
  IF NEW.weight > 0 AND NEW.height > 0 THEN
    NEW.bmi := ROUND((NEW.weight / (NEW.height * NEW.height))::numeric, 2);
  ELSE
    NEW.bmi := NULL;
  END IF;
  RETURN NEW;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS anthropometries_bmi ON anthropometries`,
	`CREATE TRIGGER anthropometries_bmi
BEFORE INSERT OR UPDATE ON anthropometries
FOR EACH ROW EXECUTE FUNCTION compute_anthropometry_bmi()`,
}

// Migrate creates or updates every table
func Migrate(db *DB, opts MigrateOptions) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if !opts.BMITrigger {
		return nil
	}

	statements := sqliteBMITrigger
	if db.Dialect == config.DialectPostgres {
		statements = postgresBMITrigger
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to install bmi trigger: %w", err)
		}
	}
	return nil
}
