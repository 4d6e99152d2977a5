// cocada is the local terminal companion for the Cocada Nordestina sales
// system: it opens the store, seeds first-run data and runs the read-side
// commands (reports, metrics, exports). All state stays on this machine.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rukioi/CocadaNordestina/internal/config"
	"github.com/rukioi/CocadaNordestina/internal/repository"
	"github.com/rukioi/CocadaNordestina/internal/service"
	"github.com/rukioi/CocadaNordestina/internal/store"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Opening store",
		zap.String("version", Version),
		zap.String("path", cfg.Store.Path),
	)

	st, err := store.Open(cfg.Store.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open store", zap.Error(err))
	}

	repos := repository.NewRepositories(st)
	services := service.NewServices(st, repos, zapLogger)

	if err := services.Product.SeedInitialCatalog(); err != nil {
		zapLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}
	if cfg.Seed.AdminPassword != "" {
		if err := services.Auth.SeedInitialAdmin(cfg.Seed.AdminName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			zapLogger.Fatal("Failed to seed admin user", zap.Error(err))
		}
	}

	cmd := "report"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "seed":
		// Seeding already ran above; this just makes first-run setup an
		// explicit step instead of a side effect of another command.
		zapLogger.Info("Seed complete")

	case "report":
		text, err := services.Report.WhatsAppReport()
		if err != nil {
			zapLogger.Fatal("Report failed", zap.Error(err))
		}
		fmt.Print(text)

	case "metrics":
		m, err := services.Metrics.Dashboard()
		if err != nil {
			zapLogger.Fatal("Metrics failed", zap.Error(err))
		}
		fmt.Printf("Receita do mês:   R$ %.2f\n", m.MonthlyRevenue)
		fmt.Printf("Potes em estoque: %d\n", m.TotalProducts)
		fmt.Printf("Clientes:         %d\n", m.TotalCustomers)
		for _, p := range m.TopProducts {
			fmt.Printf("  %-24s %d potes\n", p.Name, p.Quantity)
		}
		for _, tier := range m.CustomerDistribution {
			fmt.Printf("  %-10s %d clientes\n", tier.Category, tier.Count)
		}

	case "export":
		path, err := services.Export.WriteSalesSnapshot(cfg.Store.ExportDir)
		if err != nil {
			zapLogger.Fatal("Export failed", zap.Error(err))
		}
		zapLogger.Info("Export written", zap.String("path", path))

	case "backup":
		path, err := services.Export.WriteBackup(cfg.Store.ExportDir)
		if err != nil {
			zapLogger.Fatal("Backup failed", zap.Error(err))
		}
		zapLogger.Info("Backup written", zap.String("path", path))

	case "audit":
		entries, err := services.Audit.Entries()
		if err != nil {
			zapLogger.Fatal("Audit listing failed", zap.Error(err))
		}
		for _, e := range entries {
			fmt.Printf("%s  %-26s %s: %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.UserName, e.Details)
		}

	default:
		fmt.Fprintf(os.Stderr, "usage: cocada [seed|report|metrics|export|backup|audit]\n")
		os.Exit(2)
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}
