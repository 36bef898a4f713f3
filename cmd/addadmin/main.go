// Command addadmin creates an admin account from the command line, for
// bootstrapping a fresh deployment.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"skymentor/internal/config"
	"skymentor/internal/model"
	"skymentor/internal/repository"
	"skymentor/internal/service"
)

func main() {
	name := flag.String("name", "", "display name of the admin")
	email := flag.String("email", "", "login email of the admin")
	password := flag.String("password", "", "initial password (min 8 chars)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *name == "" || *email == "" || *password == "" {
		logger.Error("all of -name, -email and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadConfig("configs"); err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.Error("Error running migrations", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewGormUserRepository()
	auditRepo := repository.NewGormAuditRepository()
	authService := service.NewAuthService(db, userRepo, auditRepo, &config.Cfg)

	resp, err := authService.Signup(context.Background(), &model.SignupRequest{
		Role:     model.RoleAdmin,
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		logger.Error("Failed to create admin", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Admin created", "user_id", resp.User.ID, "email", resp.User.Email)
}
