package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/logger"
)

// Seeds the configured Datastore project with the fixture departments
// and employees. No-op when either collection already has documents —
// the same routine the server runs at startup.
func main() {
	project := flag.String("project", "", "Datastore project id (defaults to DATASTORE_PROJECT_ID)")
	flag.Parse()

	ctx := context.Background()

	if err := config.LoadEnvConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)

	projectID := *project
	if projectID == "" {
		projectID = config.DefaultEnvConfig.DATASTORE_PROJECT_ID
	}
	if projectID == "" {
		fmt.Fprintln(os.Stderr, "no Datastore project configured")
		os.Exit(1)
	}

	store, err := database.NewDatastoreStore(ctx, projectID)
	if err != nil {
		logger.ErrorLog(ctx, "Failed to connect to datastore", err)
		os.Exit(1)
	}
	defer store.Close()

	seeded, err := database.NewDataSeeder(store).SeedIfEmpty(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "Seeding failed", err)
		os.Exit(1)
	}
	if seeded {
		logger.InfoLog(ctx, "Seeding complete")
	} else {
		logger.InfoLog(ctx, "Store not empty, nothing to do")
	}
}
