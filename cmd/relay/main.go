package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/Liam-made-young/REPUBLIC/internal/relay"
	"github.com/Liam-made-young/REPUBLIC/internal/version"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
)

func init() {
	logger.Init()
}

// loadConfig собирает конфигурацию релея: дефолты, переменные окружения
// REPUBLIC_* и необязательный relay.yaml в рабочей директории.
func loadConfig() error {
	viper.SetDefault("addr", "0.0.0.0")
	viper.SetDefault("port", 8080)
	viper.SetDefault("room.ttl", "30m")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetEnvPrefix("REPUBLIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("relay")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Файл не обязателен: работаем на дефолтах и окружении, если его нет.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func main() {
	if err := loadConfig(); err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	logger.Configure(viper.GetString("log.level"), viper.GetString("log.format"))

	logger.Log.Info("Starting REPUBLIC relay...")
	logger.Log.Info(version.String())

	ttl, err := time.ParseDuration(viper.GetString("room.ttl"))
	if err != nil {
		logger.Log.Fatal("Invalid room.ttl: ", err)
	}

	addr := fmt.Sprintf("%s:%d", viper.GetString("addr"), viper.GetInt("port"))
	srv := relay.New(addr, ttl)

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Log.Fatal("Relay server error: ", err)
	}

	logger.Log.Info("Done.")
}
