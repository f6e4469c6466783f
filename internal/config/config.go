package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Lead sources
const (
	SourceDB     = "db"
	SourceRemote = "remote"
)

// Stage sinks
const (
	SinkDB     = "db"
	SinkRemote = "remote"
	SinkQueue  = "queue"
	SinkRedis  = "redis"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	LogLevel    string
	LogFormat   string
	AutoMigrate bool

	LeadSource       string
	RemoteBaseURL    string
	RemoteFetchPath  string
	RemoteStatusPath string
	StageSinks       []string
	FetchTimeout     time.Duration
	ActingUserID     string

	NotifyWorkers        int
	NotifyBuffer         int
	NotifyTimeout        time.Duration
	NotifyHandoffTimeout time.Duration

	RedisURL           string
	CacheTTL           time.Duration
	TransitionsChannel string

	QueueConnectionString string
	QueueName             string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "leadboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "leadboard_pass"),
		DBName:     getEnv("DB_NAME", "leadboard_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),

		LeadSource:       getEnv("LEAD_SOURCE", SourceDB),
		RemoteBaseURL:    getEnv("REMOTE_BASE_URL", ""),
		RemoteFetchPath:  getEnv("REMOTE_FETCH_PATH", "/leads"),
		RemoteStatusPath: getEnv("REMOTE_STATUS_PATH", "/leads/status"),
		StageSinks:       getEnvList("STAGE_SINKS", []string{SinkDB}),
		FetchTimeout:     getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		ActingUserID:     getEnv("ACTING_USER_ID", "1"),

		NotifyWorkers:        getEnvInt("NOTIFY_WORKERS", 4),
		NotifyBuffer:         getEnvInt("NOTIFY_BUFFER", 256),
		NotifyTimeout:        getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyHandoffTimeout: getEnvDuration("NOTIFY_HANDOFF_TIMEOUT", 15*time.Millisecond),

		RedisURL:           getEnv("REDIS_URL", ""),
		CacheTTL:           getEnvDuration("CACHE_TTL", time.Minute),
		TransitionsChannel: getEnv("TRANSITIONS_CHANNEL", "leadboard:transitions"),

		QueueConnectionString: getEnv("QUEUE_CONNECTION_STRING", ""),
		QueueName:             getEnv("QUEUE_NAME", "lead-stage-updates"),
	}
}

// DSN is the gorm/pgx connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// MigrateURL is the connection URL for golang-migrate's pgx driver
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// RemoteURL joins path onto the remote store base URL
func (c *Config) RemoteURL(path string) string {
	return strings.TrimRight(c.RemoteBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warnf("invalid %s=%q, using %d", key, v, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warnf("invalid %s=%q, using %v", key, v, defaultVal)
		return defaultVal
	}
	return d
}

func getEnvBool(key string, defaultVal bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warnf("invalid %s=%q, using %t", key, v, defaultVal)
		return defaultVal
	}
	return b
}

func getEnvList(key string, defaultVal []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
