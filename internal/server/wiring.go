package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"leadboard/internal/config"
	"leadboard/internal/notifier"
	"leadboard/internal/repository"
	"leadboard/internal/source"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrMissingDependency = errors.New("missing dependency")

// Deps are the shared clients the configured sources and sinks are built on.
// Any of them may be nil when no configured component needs it.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	HTTP  *http.Client
}

func (d Deps) httpClient() *http.Client {
	if d.HTTP != nil {
		return d.HTTP
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// NewRedis connects to REDIS_URL, or returns nil when it is unset.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewSource builds the lead batch source selected by LEAD_SOURCE, wrapped in
// the redis read-through cache when redis is available.
func NewSource(cfg *config.Config, deps Deps) (source.Source, error) {
	var src source.Source
	switch cfg.LeadSource {
	case config.SourceDB:
		if deps.DB == nil {
			return nil, fmt.Errorf("%w: database for lead source", ErrMissingDependency)
		}
		src = repository.NewLeadRepository(deps.DB)
	case config.SourceRemote:
		if cfg.RemoteBaseURL == "" {
			return nil, fmt.Errorf("%w: REMOTE_BASE_URL for lead source", ErrMissingDependency)
		}
		src = source.NewHTTPSource(cfg.RemoteURL(cfg.RemoteFetchPath), deps.httpClient())
	default:
		return nil, fmt.Errorf("unknown LEAD_SOURCE %q", cfg.LeadSource)
	}
	if deps.Redis != nil {
		src = source.NewCache(src, deps.Redis, cfg.CacheTTL)
	}
	return src, nil
}

// NewWriter builds the stage update sink from STAGE_SINKS. Several sinks are
// written through a Fanout.
func NewWriter(cfg *config.Config, deps Deps) (notifier.Writer, error) {
	var writers notifier.Fanout
	for _, sink := range cfg.StageSinks {
		switch sink {
		case config.SinkDB:
			if deps.DB == nil {
				return nil, fmt.Errorf("%w: database for %s sink", ErrMissingDependency, sink)
			}
			writers = append(writers, repository.NewLeadRepository(deps.DB))
		case config.SinkRemote:
			if cfg.RemoteBaseURL == "" {
				return nil, fmt.Errorf("%w: REMOTE_BASE_URL for %s sink", ErrMissingDependency, sink)
			}
			writers = append(writers, notifier.NewHTTPWriter(cfg.RemoteURL(cfg.RemoteStatusPath), deps.httpClient()))
		case config.SinkQueue:
			w, err := notifier.NewQueueWriter(cfg.QueueConnectionString, cfg.QueueName)
			if err != nil {
				return nil, err
			}
			writers = append(writers, w)
		case config.SinkRedis:
			if deps.Redis == nil {
				return nil, fmt.Errorf("%w: REDIS_URL for %s sink", ErrMissingDependency, sink)
			}
			writers = append(writers, notifier.NewRedisWriter(deps.Redis, cfg.TransitionsChannel))
		default:
			return nil, fmt.Errorf("unknown stage sink %q", sink)
		}
	}

	switch len(writers) {
	case 0:
		return nil, errors.New("no stage sinks configured")
	case 1:
		return writers[0], nil
	}
	return writers, nil
}
