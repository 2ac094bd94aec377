package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/core-banking-ledger/src/internal/accountno"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/file"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/postgres"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-ledger/src/internal/config"
	"github.com/api-sage/core-banking-ledger/src/internal/logger"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("configure logger: %v", err)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelBoot()

	var store repo_interfaces.SnapshotStore
	switch cfg.SnapshotBackend {
	case config.SnapshotBackendPostgres:
		if err := postgres.RunMigrations(bootCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
		db, err := postgres.Open(bootCtx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer db.Close()
		store = postgres.NewSnapshotStore(db)
	default:
		fileStore, err := file.NewSnapshotStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("open snapshot directory: %v", err)
		}
		store = fileStore
	}

	numbers := accountno.NewGenerator(cfg.AccountNumberLength)
	userRepo := memory.NewUserRepository()
	accountRepo := memory.NewAccountRepository()
	txLog := memory.NewTransactionLog()

	ledger := services.NewLedgerService(accountRepo, txLog)
	checkpoints := services.NewCheckpointService(userRepo, accountRepo, txLog, store, ledger, numbers)
	userService := services.NewUserService(userRepo)
	accountService := services.NewAccountService(accountRepo, userRepo, numbers, ledger, checkpoints, cfg.DefaultBankName)

	if err := checkpoints.Restore(bootCtx); err != nil {
		log.Fatalf("restore state: %v", err)
	}

	users, err := userService.ListAllUsers(bootCtx)
	if err != nil {
		log.Fatalf("list users: %v", err)
	}
	accounts, err := accountService.ListAllAccounts(bootCtx)
	if err != nil {
		log.Fatalf("list accounts: %v", err)
	}
	transactions, err := ledger.ExportState(bootCtx)
	if err != nil {
		log.Fatalf("read ledger: %v", err)
	}

	logger.Info("bank ledger ready", logger.Fields{
		"snapshotBackend": cfg.SnapshotBackend,
		"users":           len(*users.Data),
		"accounts":        len(*accounts.Data),
		"transactions":    len(transactions),
	})

	// Run until interrupted, then persist everything on the way out.
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-runCtx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := checkpoints.Checkpoint(shutdownCtx); err != nil {
		log.Fatalf("final checkpoint: %v", err)
	}
	logger.Info("bank ledger state persisted", nil)
}
