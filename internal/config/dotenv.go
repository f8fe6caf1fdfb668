package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fittrack-go/pkg/logger"
)

const (
	dotenvFilename = ".env"
	// envFileVar points at an explicit env file and disables the upward search.
	envFileVar = "FITTRACK_ENV_FILE"
)

type envEntry struct {
	key   string
	value string
}

func loadDotEnv(log logger.Logger) error {
	path := os.Getenv(envFileVar)
	if path == "" {
		found, err := findDotEnv(dotenvFilename)
		if err != nil {
			return err
		}
		path = found
	}

	entries, err := readDotEnv(path)
	if err != nil {
		return err
	}

	loaded, skipped, err := applyDotEnv(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log.Info("dotenv: loaded variables", "count", loaded, "skipped", skipped, "path", path)
	return nil
}

// findDotEnv walks from the working directory up to the filesystem root.
func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func readDotEnv(path string) ([]envEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []envEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		if key, value, ok := splitKeyValue(line); ok {
			entries = append(entries, envEntry{key: key, value: value})
		}
	}
	return entries, scanner.Err()
}

// applyDotEnv sets entries that are not already present in the environment.
// Real environment variables always win over the file.
func applyDotEnv(entries []envEntry) (loaded, skipped int, err error) {
	for _, e := range entries {
		if _, exists := os.LookupEnv(e.key); exists {
			skipped++
			continue
		}
		if err := os.Setenv(e.key, e.value); err != nil {
			return loaded, skipped, err
		}
		loaded++
	}
	return loaded, skipped, nil
}

func splitKeyValue(line string) (string, string, bool) {
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return key, value, true
	}

	switch first, last := value[0], value[len(value)-1]; {
	case first == '"' && last == '"':
		if unquoted, err := strconv.Unquote(value); err == nil {
			return key, unquoted, true
		}
		return key, value[1 : len(value)-1], true
	case first == '\'' && last == '\'':
		return key, value[1 : len(value)-1], true
	}

	// A # only starts a comment after whitespace, so URLs with fragments survive.
	if i := strings.Index(value, " #"); i >= 0 {
		value = value[:i]
	}
	if i := strings.Index(value, "\t#"); i >= 0 {
		value = value[:i]
	}
	return key, strings.TrimSpace(value), true
}
