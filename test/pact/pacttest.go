//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "delivery-api"
	ConsumerName = "ops-portal"

	StateReferenceSeeded = "catalog and customer reference data seeded"
	StateOrderExists     = "order with id 1 exists"
	StateOrderMissing    = "no order with id 404"
	StateShiftOpen       = "shift with id 1 is open"
)

const (
	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 404
	OpenShiftID     int64 = 1

	CustomerID     = "7a9f3c1e-4b2d-4f6a-9c8e-1d5b7a3f9e2c"
	AddressID      = int64(1)
	PaymentID      = int64(1)
	VariantID      = int64(7)
	VariantProduct = "Shawarma"
	VariantSize    = "Large"
	VariantType    = "Chicken"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the ops portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload is the stable order placement request body.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"userId":    CustomerID,
		"addressId": AddressID,
		"paymentId": PaymentID,
		"shiftId":   OpenShiftID,
		"items": []map[string]any{
			{"variantId": VariantID, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
