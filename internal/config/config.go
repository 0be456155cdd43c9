package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Synth  SynthConfig
	Jobs   JobsConfig
	AWS    AWSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// SynthConfig holds audio synthesis configuration
type SynthConfig struct {
	SampleRate    int
	Duration      time.Duration
	MaxDuration   time.Duration
	Format        string
	MinAudibleHz  float64
	MaxAudibleHz  float64
	HistogramBins int
}

// JobsConfig holds job coordinator configuration
type JobsConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// AWSConfig holds AWS/S3 configuration. An empty S3Bucket disables
// artifact archiving entirely.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("SAMPLE_RATE", 44100)
	viper.SetDefault("AUDIO_DURATION_SECONDS", 30)
	viper.SetDefault("MAX_SYNTHESIS_SECONDS", 120)
	viper.SetDefault("AUDIO_FORMAT", "wav")
	viper.SetDefault("MIN_AUDIBLE_HZ", 20.0)
	viper.SetDefault("MAX_AUDIBLE_HZ", 20000.0)
	viper.SetDefault("HISTOGRAM_BUCKETS", 10)
	viper.SetDefault("WORKER_COUNT", 4)
	viper.SetDefault("QUEUE_SIZE", 64)
	viper.SetDefault("JOB_TIMEOUT_SECONDS", 300)
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")

	// Read from .env files based on environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read .env file (ignore error if file doesn't exist)
	_ = viper.ReadInConfig()

	// Environment variables override .env file values
	viper.AutomaticEnv()

	viper.BindEnv("PORT")
	viper.BindEnv("ENVIRONMENT")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("SAMPLE_RATE")
	viper.BindEnv("AUDIO_DURATION_SECONDS")
	viper.BindEnv("MAX_SYNTHESIS_SECONDS")
	viper.BindEnv("AUDIO_FORMAT")
	viper.BindEnv("MIN_AUDIBLE_HZ")
	viper.BindEnv("MAX_AUDIBLE_HZ")
	viper.BindEnv("HISTOGRAM_BUCKETS")
	viper.BindEnv("WORKER_COUNT")
	viper.BindEnv("QUEUE_SIZE")
	viper.BindEnv("JOB_TIMEOUT_SECONDS")
	viper.BindEnv("AWS_REGION")
	viper.BindEnv("AWS_ACCESS_KEY_ID")
	viper.BindEnv("AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("S3_BUCKET")
	viper.BindEnv("S3_ENDPOINT")

	var config Config
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",")
	config.Synth.SampleRate = viper.GetInt("SAMPLE_RATE")
	config.Synth.Duration = time.Duration(viper.GetInt("AUDIO_DURATION_SECONDS")) * time.Second
	config.Synth.MaxDuration = time.Duration(viper.GetInt("MAX_SYNTHESIS_SECONDS")) * time.Second
	config.Synth.Format = viper.GetString("AUDIO_FORMAT")
	config.Synth.MinAudibleHz = viper.GetFloat64("MIN_AUDIBLE_HZ")
	config.Synth.MaxAudibleHz = viper.GetFloat64("MAX_AUDIBLE_HZ")
	config.Synth.HistogramBins = viper.GetInt("HISTOGRAM_BUCKETS")
	config.Jobs.Workers = viper.GetInt("WORKER_COUNT")
	config.Jobs.QueueSize = viper.GetInt("QUEUE_SIZE")
	config.Jobs.JobTimeout = time.Duration(viper.GetInt("JOB_TIMEOUT_SECONDS")) * time.Second
	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")

	return &config, nil
}
