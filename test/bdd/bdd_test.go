package bdd

import (
	"fmt"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/craftchain-go/test/bdd/steps"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := helpers.CloseSharedTestDB(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close test database: %v\n", err)
	}
	os.Exit(code)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/planning", "features/chain", "features/catalog"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Catalog steps are shared by both contexts and registered once
	world := steps.InitializeCatalogScenario(sc)
	steps.InitializePlanningScenario(sc, world)
	steps.InitializeChainScenario(sc, world)
}
