package api

import (
	"context"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ConfigStore holds the current configuration snapshot, which the config watcher replaces on file changes
type ConfigStore struct {
	mutex  sync.RWMutex
	config *APIConfig
}

// NewConfigStore returns a store holding config
func NewConfigStore(config *APIConfig) *ConfigStore {
	return &ConfigStore{config: config}
}

// Get returns a deep copy of the current config, so callers can't mutate the shared snapshot
func (s *ConfigStore) Get() *APIConfig {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var config APIConfig
	err := copier.CopyWithOption(&config, s.config, copier.Option{DeepCopy: true})
	if err != nil {
		log.Warn().Err(err).Msg("Failed deep copying config, returning shared snapshot")
		return s.config
	}

	return &config
}

// Set replaces the issue templates and job settings; the api server, integrations, database and queue sections keep their startup values, since the clients built from them aren't recreated
func (s *ConfigStore) Set(config *APIConfig) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config != nil && config != nil {
		if !reflect.DeepEqual(s.config.Database, config.Database) || !reflect.DeepEqual(s.config.Queue, config.Queue) || !reflect.DeepEqual(s.config.Integrations, config.Integrations) || !reflect.DeepEqual(s.config.APIServer, config.APIServer) {
			log.Warn().Msg("Changes to the apiServer, integrations, database or queue config only take effect after a restart")
		}
		config.APIServer = s.config.APIServer
		config.Integrations = s.config.Integrations
		config.Database = s.config.Database
		config.Queue = s.config.Queue
	}

	s.config = config
}

// WatchConfigFile reloads the config file on every write and swaps it into the store; invalid versions are logged and ignored
func WatchConfigFile(ctx context.Context, configReader ConfigReader, configFilePath string, store *ConfigStore) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// watch the directory, configmap mounts replace the file through a symlink swap
	err = watcher.Add(filepath.Dir(configFilePath))
	if err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isConfigFileEvent(event, configFilePath) {
					continue
				}

				log.Info().Str("file", event.Name).Msgf("Config file changed (%v), reloading...", event.Op)

				config, err := configReader.ReadConfigFromFile(configFilePath, true)
				if err != nil {
					log.Error().Err(err).Msgf("Failed reloading config file %v, keeping the previous config", configFilePath)
					continue
				}

				store.Set(config)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("Config file watcher error")
			}
		}
	}()

	return nil
}

func isConfigFileEvent(event fsnotify.Event, configFilePath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	// configmap updates touch the ..data symlink instead of the file itself
	base := filepath.Base(event.Name)
	return filepath.Clean(event.Name) == filepath.Clean(configFilePath) || base == "..data"
}
