package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"presence/internal/application"
	"presence/internal/config"
	"presence/internal/infrastructure/clock"
	"presence/internal/infrastructure/database"
	"presence/internal/infrastructure/device"
	"presence/internal/infrastructure/i18n"
	"presence/internal/infrastructure/mailer"
	"presence/internal/scheduler"
)

func main() {
	reportNow := flag.Bool("report-now", false, "génère et envoie le rapport de présence immédiatement, puis quitte")
	flag.Parse()

	zl, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("❌ Configuration invalide: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("❌ Erreur lors de l'initialisation de la base de données: %v", err)
	}
	defer pool.Close()
	logger.Info("✅ Base de données PostgreSQL connectée")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Fatalf("❌ Erreur lors des migrations: %v", err)
	}

	eventRepo := database.NewEventRepository(pool)
	attendanceRepo := database.NewAttendanceRepository(pool)

	m, err := mailer.NewResendMailer(cfg.ResendAPIKey)
	if err != nil {
		logger.Fatalf("❌ Erreur lors de l'initialisation du transport email: %v", err)
	}
	translator := i18n.NewTranslator(cfg.DefaultLocale)
	clk := clock.System{}

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		logger.Fatalf("❌ Fuseau horaire invalide: %v", err)
	}

	reportSvc := application.NewReportService(
		eventRepo, attendanceRepo, m, clk,
		cfg.ReportFrom, cfg.ReportRecipient, loc, logger,
	)

	if *reportNow {
		outcome, err := reportSvc.RunNow(ctx)
		if err != nil {
			fmt.Println(translator.T(cfg.DefaultLocale, "report_failed", map[string]any{"Error": err.Error()}))
			os.Exit(1)
		}
		if !outcome.Sent {
			fmt.Println(translator.T(cfg.DefaultLocale, "report_no_events", nil))
			return
		}
		fmt.Println(translator.T(cfg.DefaultLocale, "report_sent", map[string]any{
			"Events":  outcome.EventCount,
			"Records": outcome.RecordCount,
		}))
		return
	}

	deviceID, err := device.NewFingerprint(cfg.DeviceTokenPath).DeviceID(ctx)
	if err != nil {
		logger.Fatalf("❌ Erreur lors de la dérivation de l'identifiant d'appareil: %v", err)
	}
	logger.Infow("🔐 Identifiant d'appareil de cette installation", "device_id", deviceID)

	feed := database.NewAttendanceFeed(pool, 15*time.Second)
	records, err := feed.Start(ctx)
	if err != nil {
		logger.Fatalf("❌ Erreur lors du démarrage du flux de présences: %v", err)
	}
	defer feed.Stop()
	go func() {
		for rec := range records {
			logger.Infow("🟢 Nouvelle présence enregistrée",
				"event_id", rec.EventID, "user_id", rec.UserID)
		}
	}()

	sched := scheduler.New(reportSvc, clk, loc, logger)
	logger.Info("✅ Planificateur de rapport mensuel démarré")
	sched.Run(ctx)
}
