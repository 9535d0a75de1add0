package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Sweeper SweeperConfig
}

type AppConfig struct {
	Name      string
	Port      string
	Debug     bool
	LogPath   string
	SeatCount int
}

type StoreConfig struct {
	CSVPath string
}

type SweeperConfig struct {
	Interval     time.Duration
	NotifyBuffer int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "library-seating")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SEAT_COUNT", 50)
	viper.SetDefault("BOOKINGS_CSV", "bookings.csv")
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 1)
	viper.SetDefault("NOTIFY_BUFFER", 64)

	// A missing .env just means defaults; the tool runs without setup.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Port:      viper.GetString("PORT"),
			Debug:     viper.GetBool("DEBUG"),
			LogPath:   viper.GetString("LOG_PATH"),
			SeatCount: viper.GetInt("SEAT_COUNT"),
		},
		Store: StoreConfig{
			CSVPath: viper.GetString("BOOKINGS_CSV"),
		},
		Sweeper: SweeperConfig{
			Interval:     time.Duration(viper.GetInt("SWEEP_INTERVAL_SECONDS")) * time.Second,
			NotifyBuffer: viper.GetInt("NOTIFY_BUFFER"),
		},
	}

	return config, nil
}
