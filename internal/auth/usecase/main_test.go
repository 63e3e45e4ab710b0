package usecase

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that the token lifecycle tests leave no goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
