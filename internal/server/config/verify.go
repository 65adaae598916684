// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Bind == "" {
		return errors.New("server.bind is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Port)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}

	if cfg.SnapshotKeep < 1 {
		return errors.New("storage.snapshot_keep must be at least 1")
	}

	for _, rule := range cfg.SaveRules {
		if err := verifySaveRule(rule); err != nil {
			return err
		}
	}

	return nil
}

// verifySaveRule validates a "<seconds>:<changes>" save-point entry.
func verifySaveRule(rule string) error {
	parts := strings.SplitN(rule, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("storage.save rule %q must be in \"seconds:changes\" form", rule)
	}
	seconds, err := strconv.Atoi(parts[0])
	if err != nil || seconds <= 0 {
		return fmt.Errorf("storage.save rule %q has an invalid seconds value", rule)
	}
	changes, err := strconv.Atoi(parts[1])
	if err != nil || changes <= 0 {
		return fmt.Errorf("storage.save rule %q has an invalid changes value", rule)
	}
	return nil
}
