package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Sumber data pendapatan & invoice.
const (
	DataSourceAPI     = "api"
	DataSourceMariaDB = "mariadb"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	// DataSource selects where revenue and invoices come from: "api" or "mariadb".
	// Appointments always come from the hospital API.
	DataSource       string
	HospitalAPIURL   string
	HospitalAPIToken string
	HospitalTimeout  time.Duration
	InvoicePageSize  int

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SummaryCacheTTL time.Duration

	Timezone string
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = FromEnv()
	})
	return cfg
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		DataSource:       getEnv("DATA_SOURCE", DataSourceAPI),
		HospitalAPIURL:   getEnv("HOSPITAL_API_URL", "http://localhost:5000/api"),
		HospitalAPIToken: os.Getenv("HOSPITAL_API_TOKEN"),
		HospitalTimeout:  getDuration("HOSPITAL_API_TIMEOUT", 10*time.Second),
		InvoicePageSize:  getInt("INVOICE_PAGE_SIZE", 50),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getInt("REDIS_DB", 0),
		SummaryCacheTTL: getDuration("SUMMARY_CACHE_TTL", 30*time.Second),

		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// Location resolves Timezone, falling back to UTC when the zone is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
