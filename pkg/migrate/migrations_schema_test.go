package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVegetablesMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_vegetables_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS vegetables",
		"price NUMERIC(12,2) NOT NULL",
		"CONSTRAINT chk_vegetables_stock CHECK (stock >= 0)",
		"CONSTRAINT chk_vegetables_category CHECK (category IN ('daun', 'akar', 'bunga', 'buah'))",
		"CONSTRAINT chk_vegetables_status CHECK (status IN ('available', 'unavailable'))",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_vegetables_name",
		// nullable on purpose: the listing outlives its creator
		"created_by UUID REFERENCES users (id) ON DELETE SET NULL",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
	if strings.Contains(content, "created_by UUID NOT NULL") {
		t.Error("created_by must stay nullable to survive user deletes")
	}
}

func TestTransactionMigrationsContainConstraints(t *testing.T) {
	header := readMigration(t, "*_create_transactions_table.sql")
	for _, sub := range []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_code",
		"CONSTRAINT chk_transactions_payment_method CHECK (payment_method IN ('transfer', 'cash'))",
		"CONSTRAINT chk_transactions_status CHECK (status IN ('pending', 'completed', 'cancelled'))",
	} {
		if !strings.Contains(header, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	detail := readMigration(t, "*_create_transaction_details_table.sql")
	for _, sub := range []string{
		"transaction_id UUID NOT NULL REFERENCES transactions (id) ON DELETE CASCADE",
		"unit_price NUMERIC(12,2) NOT NULL",
		"subtotal NUMERIC(12,2) NOT NULL",
	} {
		if !strings.Contains(detail, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCartMigrationEnforcesOneRowPerVegetable(t *testing.T) {
	content := readMigration(t, "*_create_cart_items_table.sql")
	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_user_vegetable") {
		t.Error("missing unique cart line index")
	}
	if !strings.Contains(content, "CONSTRAINT chk_cart_items_quantity CHECK (quantity > 0)") {
		t.Error("missing quantity constraint")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matches %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
