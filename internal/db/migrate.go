package db

import (
	"fmt"     // Error wrapping
	"strings" // Trigger names

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate creates tables, indexes, foreign keys and the budget category trigger
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Income{}, &domain.Expense{}, &domain.Budget{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := installBudgetTrigger(db); err != nil {
		return fmt.Errorf("budget trigger: %w", err)
	}
	logrus.WithField("dialect", db.Dialector.Name()).Info("Migration completed.")
	return nil
}

// installBudgetTrigger rejects budgets pointing at income categories at the storage layer
func installBudgetTrigger(db *gorm.DB) error {
	var stmts []string
	switch db.Dialector.Name() {
	case "sqlite":
		for _, event := range []string{"INSERT", "UPDATE"} {
			name := "budget_category_expense_check_" + strings.ToLower(event)
			stmts = append(stmts,
				"DROP TRIGGER IF EXISTS "+name,
				"CREATE TRIGGER "+name+" BEFORE "+event+" ON budgets FOR EACH ROW "+
					"WHEN EXISTS (SELECT 1 FROM categories WHERE id = NEW.category_id AND is_income = 1) "+
					"BEGIN SELECT RAISE(ABORT, '"+domain.BudgetCategoryMessage+"'); END",
			)
		}
	case "mysql":
		for _, event := range []string{"INSERT", "UPDATE"} {
			name := "budget_category_expense_check_" + strings.ToLower(event)
			stmts = append(stmts,
				"DROP TRIGGER IF EXISTS "+name,
				"CREATE TRIGGER "+name+" BEFORE "+event+" ON budgets FOR EACH ROW BEGIN "+
					"IF EXISTS (SELECT 1 FROM categories WHERE id = NEW.category_id AND is_income = TRUE) THEN "+
					"SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = '"+domain.BudgetCategoryMessage+"'; "+
					"END IF; END",
			)
		}
	default:
		logrus.WithField("dialect", db.Dialector.Name()).Warn("no budget trigger for dialect")
		return nil
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
