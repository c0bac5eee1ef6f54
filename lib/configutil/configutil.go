package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

func readInto[T any](path string, out *T) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads a json5 configuration file. `name` should come with a
// file extension; a sibling `<name>.local.<ext>` file, if present, is
// merged on top so checked-in defaults can be overridden per machine.
func ReadConfig[T any](name string) (T, error) {
	var out T

	dirname := filepath.Dir(name)
	prefix, ext := splitExt(filepath.Base(name))
	localPath := filepath.Join(dirname, fmt.Sprintf("%s.local.%s", prefix, ext))

	foundDefault, err := readInto(name, &out)
	if err != nil {
		return out, err
	}

	var override T
	foundLocal, err := readInto(localPath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !foundDefault && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig, but it walks up the filesystem until the
// root to find a configuration file matching the name. Used for shared
// files like telemetry.json5 that live at the repository root.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	root, err := filepath.Abs("/")
	if err != nil {
		return defaultOut, err
	}
	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for current != root {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			current = filepath.Join(current, "..")
			continue
		}
		if err != nil {
			return defaultOut, err
		}
		return config, nil
	}

	return defaultOut, os.ErrNotExist
}
