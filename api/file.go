// Package api holds the configuration file API of kontrol and helpers for
// reading and writing configuration files.
package api

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// AppName names the configuration directory.
const AppName = "kontrol"

var (
	ErrIsDirectory = errors.New("path is a directory")
	ErrNotRegular  = errors.New("unknown file state")
)

// GetConfigPath returns the path of filename in the user's config directory.
// It checks $XDG_CONFIG_HOME first, then ~/.config, and finally a temp
// directory.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, AppName, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", AppName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), AppName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// fileState reports whether path exists as a regular file. Directories and
// other file types are errors.
func fileState(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat file: %w", err)
	}

	switch {
	case info.IsDir():
		return false, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	return true, nil
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	exists, err := fileState(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("stat file: %w", fs.ErrNotExist)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// WriteIfNotExists writes data to path unless a file is already there.
func WriteIfNotExists(path string, data []byte) error {
	exists, err := fileState(path)
	if err != nil || exists {
		return err
	}

	return write(path, data)
}

// WriteDefaultFile writes data to path. With force, an existing file is
// renamed to a timestamped backup first; otherwise it is left alone.
func WriteDefaultFile(path string, data []byte, force bool) error {
	exists, err := fileState(path)
	if err != nil {
		return err
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write", slog.String("path", path))

		return nil
	}

	if exists {
		backupPath := filepath.Join(filepath.Dir(path),
			fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano()))

		slog.Info("backing up existing file", slog.String("path", backupPath))

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing file to backup: %w", err)
		}
	}

	slog.Info("write default file", slog.String("path", path))

	return write(path, data)
}

func write(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
