package database

import (
	"context"
	"fmt"
	"time"

	"reefclean/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes, one per cache category.
const (
	// GENERAL_CACHE_INDEX holds shared lookups such as the section template list.
	GENERAL_CACHE_INDEX = iota

	// USER_CACHE_INDEX holds resolved actors keyed by user ID.
	USER_CACHE_INDEX
)

type namedClient struct {
	name   string
	index  int
	client CacheClient
}

func (c Cache) clients() []namedClient {
	all := []namedClient{
		{"General", GENERAL_CACHE_INDEX, c.General},
		{"User", USER_CACHE_INDEX, c.User},
	}

	configured := make([]namedClient, 0, len(all))
	for _, client := range all {
		if client.client != nil {
			configured = append(configured, client)
		}
	}
	return configured
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		log.Warn("cache address or port is empty, running without cache")
		return nil
	}

	log.Info("initializing cache database", "address", address, "port", port)

	newClient := func(index int) (CacheClient, error) {
		return valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    index,
		})
	}

	var cacheDB Cache
	var err error

	cacheDB.General, err = newClient(GENERAL_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.User, err = newClient(USER_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create user valkey client", err)
	}

	s.Cache = cacheDB

	if config.DatabaseCacheReset != -1 {
		go clearCacheDB(config.DatabaseCacheReset, cacheDB)
	}

	return nil
}

func clearCacheDB(index int, cacheDB Cache) {
	log := logger.New("database").File("cache.database").Function("clearCacheDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, cache := range cacheDB.clients() {
		if cache.index != index {
			continue
		}

		if err := cache.client.Do(ctx, cache.client.B().Flushdb().Build()).Error(); err != nil {
			log.Er("Failed to clear cache database", err, "index", index, "dbName", cache.name)
			return
		}

		log.Info("Successfully cleared cache database", "index", index, "dbName", cache.name)
		return
	}

	log.Warn("Invalid cache database index", "index", index)
}
