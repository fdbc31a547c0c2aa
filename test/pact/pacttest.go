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
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCheckoutBaseline = "checkout baseline"
	StatePromosSeeded     = "launch promo codes are seeded"
	StateOrderMissing     = "no order with id ORD-MISSING1"
)

const (
	MissingOrderID = "ORD-MISSING1"

	PromoCode     = "SAVE10"
	PromoSubtotal = 100.0
	PromoDiscount = 10.0
)

const (
	exampleCustomerName  = "Pact Shopper"
	exampleCustomerEmail = "pact.shopper@example.com"
	exampleProductName   = "Ceramic Mug"
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

// PactFile returns the canonical pact file path for the web consumer.
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

// ExampleOrderDraft provides stable checkout data for pact interactions.
func ExampleOrderDraft() map[string]any {
	return map[string]any{
		"name":  exampleCustomerName,
		"email": exampleCustomerEmail,
		"items": []map[string]any{
			{"id": "prod-mug", "name": exampleProductName, "price": 25.0, "quantity": 1},
		},
		"subtotal": 25.0,
		"shipping": 5.0,
		"total":    30.0,
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
