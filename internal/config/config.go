package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/couchcryptid/metar-decoder/internal/metar"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	Format Format
}

// Format holds the rendering defaults applied to every decoded report.
type Format struct {
	DistanceUnits       string `envconfig:"DISTANCE_UNITS" default:"meters" validate:"oneof=meters miles kilometers"`
	DistanceAbbreviated bool   `envconfig:"DISTANCE_ABBREVIATED" default:"false"`
	DistanceDecimals    int    `envconfig:"DISTANCE_DECIMALS" default:"3" validate:"gte=0,lte=10"`

	DirectionUnits       string `envconfig:"DIRECTION_UNITS" default:"degrees" validate:"oneof=degrees compass"`
	DirectionAbbreviated bool   `envconfig:"DIRECTION_ABBREVIATED" default:"true"`
	DirectionDecimals    int    `envconfig:"DIRECTION_DECIMALS" default:"0" validate:"gte=0,lte=10"`

	Locale    string `envconfig:"LOCALE" default:"en" validate:"required"`
	CacheSize int    `envconfig:"DECODE_CACHE_SIZE" default:"1000" validate:"gte=0"`
}

// Options converts the format settings into parser options.
func (f Format) Options() metar.Options {
	return metar.Options{
		Distance: metar.DistanceOptions{
			Units:       metar.DistanceUnit(f.DistanceUnits),
			Abbreviated: f.DistanceAbbreviated,
			Decimals:    f.DistanceDecimals,
		},
		Direction: metar.DirectionOptions{
			Units:       metar.DirectionUnit(f.DirectionUnits),
			Abbreviated: f.DirectionAbbreviated,
			Decimals:    f.DirectionDecimals,
		},
	}
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is loaded first; it never overrides
// variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	format, err := LoadFormat()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-metar-reports"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "decoded-metar-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "metar-decoder"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		Format:             format,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// LoadFormat reads and validates only the rendering settings. The CLI uses it
// for its flag defaults.
func LoadFormat() (Format, error) {
	var f Format
	if err := envconfig.Process("", &f); err != nil {
		return Format{}, fmt.Errorf("format config: %w", err)
	}
	if err := newValidator().Struct(f); err != nil {
		return Format{}, fmt.Errorf("format config: %w", err)
	}
	return f, nil
}

// newValidator reports field errors under their environment variable names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("envconfig"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}
