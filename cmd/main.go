package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pot-code/skillspark/internal/course"
	infra "github.com/pot-code/skillspark/internal/infrastructure"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
	"github.com/pot-code/skillspark/internal/infrastructure/logging"
	"github.com/pot-code/skillspark/internal/infrastructure/uuid"
	ihttp "github.com/pot-code/skillspark/internal/interfaces/http"
	"github.com/pot-code/skillspark/internal/progress"
	"github.com/pot-code/skillspark/internal/user"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	defer logger.Sync()

	dbConn, err := driver.GetDBConnection(&driver.DBConfig{
		User:     option.Database.User,
		Password: option.Database.Password,
		MaxConn:  option.Database.MaxConn,
		Protocol: option.Database.Protocol,
		Driver:   option.Database.Driver,
		Host:     option.Database.Host,
		Port:     option.Database.Port,
		Query:    option.Database.Query,
		Schema:   option.Database.Schema,
	})
	if err != nil {
		logger.Fatal("Failed to create DB connection", zap.Error(err))
	}
	defer dbConn.Close(context.Background())
	logger.Debug("Create DB connection instance", zap.String("db.driver", option.Database.Driver),
		zap.String("db.schema", option.Database.Schema),
		zap.String("db.host", option.Database.Host),
	)

	kv, err := driver.GetKeyValueDB(&driver.KVConfig{
		Driver:   option.KVStore.Driver,
		Host:     option.KVStore.Host,
		Port:     option.KVStore.Port,
		Password: option.KVStore.Password,
		DB:       option.KVStore.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create KV store", zap.Error(err))
	}
	defer kv.Close()
	logger.Debug("Create KV store instance", zap.String("kv.driver", option.KVStore.Driver))

	UUIDGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)
	UserRepo := user.NewUserRepository(dbConn, UUIDGenerator)
	UserUseCase := user.NewUserUseCase(UserRepo, option.Security.MaxLoginAttempts, option.Security.RetryTimeout)

	CourseRepo := course.NewCourseRepository(dbConn)
	ProgressUseCase := progress.NewProgressUseCase(CourseRepo, kv, option.Progress.MinutesPerLesson)

	server := ihttp.NewServer(dbConn, kv, option, UserUseCase, ProgressUseCase, logger)
	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errs:
		if err != nil {
			logger.Error("Server stopped", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			logger.Error("Failed to stop server gracefully", zap.Error(err))
		}
	}
	if option.DevOP.APM {
		apm.DefaultTracer.Flush(nil)
	}
}
