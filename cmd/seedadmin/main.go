package main

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/database"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

const adminEnvFile = ".env.admin.local"

var errMissingCredentials = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")

// adminCredentials 从环境变量读取管理员账号
type adminCredentials struct {
	Email    string
	Password string
	Name     string
}

func credentialsFromEnv(getenv func(string) string) (adminCredentials, error) {
	creds := adminCredentials{
		Email:    strings.TrimSpace(getenv("ADMIN_EMAIL")),
		Password: getenv("ADMIN_PASSWORD"),
		Name:     strings.TrimSpace(getenv("ADMIN_NAME")),
	}
	if creds.Email == "" || creds.Password == "" {
		return creds, errMissingCredentials
	}
	if creds.Name == "" {
		creds.Name = "Admin"
	}
	return creds, nil
}

func main() {
	log := logger.New("seedadmin", false)

	// 管理员凭据单独放在本地文件，不进入主 .env
	if err := godotenv.Load(adminEnvFile); err != nil {
		log.Warn().Err(err).Str("file", adminEnvFile).Msg("admin env file not loaded, using process environment")
	}

	creds, err := credentialsFromEnv(os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("missing admin credentials")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.Open(&cfg.Database, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	user, created, err := seed(service.NewAdminService(repository.NewUserRepository(db), cfg.Auth.BcryptCost), creds)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Bool("created", created).
		Msg("admin account ready")
}

func seed(adminService *service.AdminService, creds adminCredentials) (*model.User, bool, error) {
	return adminService.EnsureAdmin(creds.Email, creds.Password, creds.Name)
}
