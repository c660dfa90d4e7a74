package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/database"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

var (
	dryRun       = flag.Bool("dry-run", true, "Dry run mode, only count what would be deleted")
	cleanOTP     = flag.Bool("clean-otp", true, "Delete expired verification codes")
	logRetention = flag.Int("log-retention-days", 0, "Delete optimization logs older than N days (0 keeps all)")
)

// summary 本次清理结果
type summary struct {
	ExpiredOTP int64
	OldLogs    int64
}

func main() {
	flag.Parse()

	log := logger.New("cleanup", false)
	log.Info().Bool("dry_run", *dryRun).Msg("starting cleanup task")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// 连接数据库
	db, err := database.Open(&cfg.Database, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	res, err := run(db, cfg, time.Now().UTC(), *dryRun, *cleanOTP, *logRetention)
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup failed")
	}

	event := log.Info().
		Int64("expired_otp", res.ExpiredOTP).
		Int64("old_logs", res.OldLogs)
	if *dryRun {
		event.Msg("dry run finished, nothing was deleted. Run with -dry-run=false to delete")
	} else {
		event.Msg("cleanup completed")
	}
}

// run 清理过期验证码与过期使用记录；dryRun 时只统计
func run(db *gorm.DB, cfg *config.Config, now time.Time, dryRun, cleanOTP bool, retentionDays int) (*summary, error) {
	res := &summary{}

	if cleanOTP {
		otpService := service.NewOTPService(repository.NewOtpRepository(db), cfg)

		var err error
		if dryRun {
			res.ExpiredOTP, err = otpService.CountExpired(now)
		} else {
			res.ExpiredOTP, err = otpService.PruneExpired(now)
		}
		if err != nil {
			return nil, fmt.Errorf("expired otp: %w", err)
		}
	}

	// 月度配额只统计当月记录，保留期至少覆盖当月
	if retentionDays > 0 {
		cutoff := now.AddDate(0, 0, -retentionDays)
		if monthStart := service.MonthStart(now); cutoff.After(monthStart) {
			cutoff = monthStart
		}

		logRepo := repository.NewOptimizationLogRepository(db)

		var err error
		if dryRun {
			res.OldLogs, err = logRepo.CountBefore(cutoff)
		} else {
			res.OldLogs, err = logRepo.DeleteBefore(cutoff)
		}
		if err != nil {
			return nil, fmt.Errorf("optimization logs: %w", err)
		}
	}

	return res, nil
}
