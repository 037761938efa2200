package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// PriceColumns maps the price table headers onto PriceRecord fields.
type PriceColumns struct {
	Region       string `validate:"required"`
	Price        string `validate:"required"`
	Date         string `validate:"required"`
	Municipality string
	Station      string
	FuelType     string
}

// S3Config configures access to s3:// dataset sources.
type S3Config struct {
	Endpoint  string `validate:"omitempty,url"`
	Region    string
	AccessKey string
	SecretKey string
}

type AppConfig struct {
	PricesSource     string `validate:"required"`
	BoundariesSource string `validate:"required"`

	PricesEncoding  string `validate:"oneof=utf-8 latin1 windows-1252"`
	PricesDelimiter rune
	PriceColumns    PriceColumns

	BoundaryRegionProperty string `validate:"required"`

	// HTTPTimeout bounds each attempt when fetching remote sources.
	HTTPTimeout time.Duration `validate:"gt=0"`

	S3 S3Config

	// Report artifacts.
	ExportDir       string        // directory for rendered files ("" = keep in memory only)
	ExportInterval  time.Duration `validate:"gt=0"`
	ArtifactHistory int           // max renders kept per artifact (0 = unlimited)

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PricesSource = getenvDefault("PRICES_SOURCE", "df_limpio.csv")
	cfg.BoundariesSource = getenvDefault("BOUNDARIES_SOURCE", "departamentos.geojson")
	cfg.PricesEncoding = getenvDefault("PRICES_ENCODING", "utf-8")

	delim := []rune(getenvDefault("PRICES_DELIMITER", ","))
	if len(delim) != 1 {
		return nil, fmt.Errorf("invalid PRICES_DELIMITER: must be a single character")
	}
	cfg.PricesDelimiter = delim[0]

	cfg.PriceColumns = PriceColumns{
		Region:       getenvDefault("PRICE_COL_REGION", "DEPARTAMENTO_EDS"),
		Price:        getenvDefault("PRICE_COL_PRICE", "PRECIO_PROMEDIO_PUBLICADO"),
		Date:         getenvDefault("PRICE_COL_DATE", "FECHA_PRECIO"),
		Municipality: getenvDefault("PRICE_COL_MUNICIPALITY", "MUNICIPIO_EDS"),
		Station:      getenvDefault("PRICE_COL_STATION", "NOMBRE_COMERCIAL_EDS"),
		FuelType:     getenvDefault("PRICE_COL_FUEL", "TIPO_COMBUSTIBLE"),
	}
	cfg.BoundaryRegionProperty = getenvDefault("BOUNDARY_REGION_PROPERTY", "DPTO_CNMBR")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.S3 = S3Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getenvDefault("S3_REGION", "auto"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	}

	cfg.ExportDir = os.Getenv("EXPORT_DIR")
	interval, err := time.ParseDuration(getenvDefault("EXPORT_INTERVAL", "60m"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_INTERVAL: %w", err)
	}
	cfg.ExportInterval = interval
	cfg.ArtifactHistory = getenvInt("ARTIFACT_HISTORY", 5)

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
