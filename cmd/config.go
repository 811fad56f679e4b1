package main

import "time"

type Config struct {
	BufferSize                int           `env:"BUFFER_SIZE,required=true"`
	ConnectionBufferSize      int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	NumberOfDeliveryWorkers   int           `env:"NUMBER_OF_DELIVERY_WORKERS,required=true"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	ModerationWordsFilepath   string        `env:"MODERATION_WORDS_FILEPATH"`
	LimitMessages             *int          `env:"LIMIT_MESSAGES"`
	MetricInterval            time.Duration `env:"METRIC_INTERVAL,default=30s"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	SeedFilepath              string        `env:"SEED_FILEPATH"`
	TokenSecret               string        `env:"TOKEN_SECRET,required=true"`
	LogLevel                  string        `env:"LOG_LEVEL,required=true"`
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=8080"`
}
