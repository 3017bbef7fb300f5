//go:build integration
// +build integration

package routes_test

import (
	"log"
	"os"
	"testing"

	"crm-backend/internal/testutils"
)

func TestMain(m *testing.M) {
	log.Println("🧪 Starting API integration tests...")
	code := m.Run()
	testutils.CleanupSharedContainer()
	os.Exit(code)
}
