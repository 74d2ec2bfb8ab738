package db

import (
	"database/sql"
	"fmt"
	"time"

	"fintrack/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

const maxConnectAttempts = 5

func Init(dbCfg *config.DBConfig) *sql.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode,
	)

	var database *sql.DB
	var err error

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		database, err = sql.Open("pgx", dsn)
		if err == nil {
			err = database.Ping()
			if err == nil {
				break
			}
			if closeErr := database.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("Failed to close database connection")
			}
		}

		logrus.WithError(err).Warnf("Database not reachable (attempt %d/%d)", attempt, maxConnectAttempts)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	if err != nil {
		logrus.WithError(err).Fatalf("Failed to connect to database after %d attempts", maxConnectAttempts)
	}

	database.SetMaxOpenConns(50)
	database.SetMaxIdleConns(10)
	database.SetConnMaxLifetime(30 * time.Minute)
	database.SetConnMaxIdleTime(5 * time.Minute)

	logrus.Info("Database connection established")
	return database
}
