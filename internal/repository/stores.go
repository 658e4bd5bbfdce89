package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/config"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/database"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

// Backend names reported by NewStore
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
	BackendMemory   = "memory"
)

// ErrUnsupportedScheme is returned for database URLs no backend understands
var ErrUnsupportedScheme = errors.New("unsupported database url scheme")

// Backend reports which store a database URL selects
func Backend(url string) (string, error) {
	scheme, _, found := strings.Cut(url, "://")
	if !found {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, url)
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "memory":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

// NewStore builds the store selected by cfg.URL. Connections are opened on
// first use; the returned close function releases them at shutdown.
func NewStore(cfg config.DatabaseConfig) (service.Store, string, func() error, error) {
	backend, err := Backend(cfg.URL)
	if err != nil {
		return nil, "", nil, err
	}

	switch backend {
	case BackendPostgres:
		conn := database.NewLazyPostgres(cfg)
		return NewPostgresStore(conn), backend, conn.Close, nil
	case BackendMongo:
		conn := database.NewLazyMongo(cfg)
		return NewMongoStore(conn), backend, conn.Close, nil
	default:
		return NewMemoryStore(), backend, func() error { return nil }, nil
	}
}
