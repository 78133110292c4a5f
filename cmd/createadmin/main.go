// Command createadmin creates the admin account, or resets its password
// when the email already exists.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/folio/internal/server"
	"github.com/dmitrijs2005/folio/internal/server/adminsetup"
	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/server/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	db, err := server.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	_, err = adminsetup.New(os.Stdin, os.Stdout, services.NewUserService(db, rm, cfg)).Run(ctx)
	return err
}
