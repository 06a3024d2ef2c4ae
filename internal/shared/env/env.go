// Package env reads typed settings from the process environment.
// .env files are loaded by godotenv in each main before these are called.
package env

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		zap.L().Warn("invalid int env, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return n
}

func Float(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		zap.L().Warn("invalid float env, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return f
}

func Duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		zap.L().Warn("invalid duration env, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return d
}

// DB holds the postgres connection settings shared by every binary.
type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func LoadDB() DB {
	return DB{
		Host:     String("DB_HOST", "localhost"),
		User:     String("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     String("DB_NAME", "backoffice"),
		Port:     String("DB_PORT", "5432"),
		SSLMode:  String("DB_SSLMODE", "disable"),
	}
}
