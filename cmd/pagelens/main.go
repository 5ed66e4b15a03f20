// Command pagelens reads web pages into addressable sections and
// ranks them by semantic similarity to free-text queries.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/ai"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/config/file"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/page/remote"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/page/static"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/storage/memory"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/transport/ws"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driving/cli"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/pagelens-labs/pagelens-cli/internal/core/services"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

// dialTimeout bounds the browser bridge handshake.
const dialTimeout = 10 * time.Second

func main() {
	cli.SetServiceBuilder(buildServices)

	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires the full dependency graph from settings and the
// --url flag. Runs after flag parsing, before any command.
func buildServices(source string) (cli.Services, error) {
	store, err := file.NewConfigStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("opening config: %w", err)
	}
	manager := services.NewSettingsManager(store)
	settings := manager.Load()

	// A missing embedder degrades search, it does not block reading
	// or navigation.
	embedder, err := ai.CreateEmbeddingService(settings.Embedding)
	if err != nil {
		logger.Warn("Embedding provider unavailable: %v", err)
		embedder = nil
	}

	var kv driven.KVStore
	if settings.CacheEmbeddings {
		sqlStore, err := sqlite.NewStore("")
		if err != nil {
			logger.Warn("Embedding cache store unavailable, using memory: %v", err)
			kv = memory.NewKVStore()
		} else {
			kv = sqlStore
		}
	} else {
		kv = memory.NewKVStore()
	}

	page, transport, err := buildPageAccessor(settings.Browser.Endpoint, source)
	if err != nil {
		return cli.Services{}, err
	}

	cache := services.NewEmbeddingCache(embedder, kv)
	ranker := services.NewRanker(cache)
	dispatcher := services.NewDispatcher(page, transport)
	session := services.NewPageSession(page, cache, ranker, dispatcher)

	return cli.Services{
		Page:     session,
		Search:   session,
		Command:  session,
		Settings: manager,
	}, nil
}

// buildPageAccessor picks the page source: an attached browser bridge
// when configured, otherwise static fetching of the --url target.
// Both may be absent; page-dependent commands then report no page.
func buildPageAccessor(endpoint, source string) (driven.PageAccessor, driven.Transport, error) {
	if endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()

		transport, err := ws.Dial(ctx, endpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("browser bridge unreachable at %s: %w", endpoint, err)
		}
		return remote.New(transport), transport, nil
	}

	if source == "" {
		return nil, nil, nil
	}

	accessor, err := static.New(static.Config{Source: source})
	if err != nil {
		return nil, nil, fmt.Errorf("invalid page source: %w", err)
	}
	return accessor, nil, nil
}
