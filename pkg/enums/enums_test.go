package enums

import "testing"

func TestParseRoundTrips(t *testing.T) {
	for _, role := range validRoles {
		parsed, err := ParseRole(role.String())
		if err != nil || parsed != role {
			t.Fatalf("role %q did not round trip: %v", role, err)
		}
	}
	for _, sub := range validSubRoles {
		parsed, err := ParseSubRole(sub.String())
		if err != nil || parsed != sub {
			t.Fatalf("sub role %q did not round trip: %v", sub, err)
		}
	}
	for _, cat := range validVegetableCategories {
		parsed, err := ParseVegetableCategory(cat.String())
		if err != nil || parsed != cat {
			t.Fatalf("category %q did not round trip: %v", cat, err)
		}
	}
	for _, status := range validTransactionStatuses {
		parsed, err := ParseTransactionStatus(status.String())
		if err != nil || parsed != status {
			t.Fatalf("transaction status %q did not round trip: %v", status, err)
		}
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	if _, err := ParseRole("superadmin"); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
	if _, err := ParseSubRole("ketua"); err == nil {
		t.Fatal("expected unknown sub role to be rejected")
	}
	if _, err := ParsePaymentMethod("credit_card"); err == nil {
		t.Fatal("expected unknown payment method to be rejected")
	}
	if _, err := ParseVegetableStatus("sold_out"); err == nil {
		t.Fatal("expected unknown vegetable status to be rejected")
	}
	if _, err := ParseTransactionStatus("Diproses"); err == nil {
		t.Fatal("expected free-text status to be rejected")
	}
}

func TestIsValidRejectsEmpty(t *testing.T) {
	if Role("").IsValid() {
		t.Fatal("empty role should be invalid")
	}
	if TransactionStatus("").IsValid() {
		t.Fatal("empty transaction status should be invalid")
	}
}
