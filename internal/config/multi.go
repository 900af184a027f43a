package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var ErrNoConfig = errors.New("no config selected")

const defaultLabel = "Default"

// fs is swapped for an in-memory file system in tests.
var fs = afero.NewOsFs()

func ConfigRoot() string {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "scanfr")
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scanfr")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scanfr")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func ConfigPathByLabel(label string) string {
	return filepath.Join(ConfigsDir(), label+".yaml")
}

func ConfigExists(label string) bool {
	_, err := fs.Stat(ConfigPathByLabel(label))
	return err == nil
}

func ensureDirs() error {
	return fs.MkdirAll(ConfigsDir(), 0755)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := afero.ReadFile(fs, CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil {
		return "", err
	}
	if label == "" {
		return "", ErrNoConfig
	}

	return ConfigPathByLabel(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fs, ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		label := strings.TrimSuffix(name, ".yaml")
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	if _, err := fs.Stat(ConfigPathByLabel(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return afero.WriteFile(fs, CurrentLabelFile(), []byte(label), 0644)
}

func CreateConfig(label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", errors.New("label cannot be empty")
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := ConfigPathByLabel(label)
	if _, err := fs.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

// InitDefaultConfig creates Default.yaml if needed and makes it active. It
// returns os.ErrExist alongside the path when the file was already there.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := ConfigPathByLabel(defaultLabel)
	if _, err := fs.Stat(defPath); err == nil {
		if err := afero.WriteFile(fs, CurrentLabelFile(), []byte(defaultLabel), 0644); err != nil {
			return "", err
		}
		return defPath, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	return defPath, afero.WriteFile(fs, CurrentLabelFile(), []byte(defaultLabel), 0644)
}

func ResetActive() (string, error) {
	path, err := ActiveConfigPath()
	if err != nil {
		return "", err
	}

	return path, SaveYAML(DefaultConfig(), path)
}

func RenameConfig(oldLabel, newLabel string) error {
	if strings.TrimSpace(newLabel) == "" {
		return errors.New("new label cannot be empty")
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	oldPath := ConfigPathByLabel(oldLabel)
	newPath := ConfigPathByLabel(newLabel)

	if _, err := fs.Stat(oldPath); err != nil {
		return fmt.Errorf("config %q does not exist", oldLabel)
	}
	if _, err := fs.Stat(newPath); err == nil {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := fs.Rename(oldPath, newPath); err != nil {
		return err
	}

	active, _ := CurrentLabel()
	if active == oldLabel {
		return afero.WriteFile(fs, CurrentLabelFile(), []byte(newLabel), 0644)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active one falls back to
// Default, which itself cannot be removed.
func RemoveConfig(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if label == defaultLabel {
		return errors.New("cannot remove the Default config")
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	path := ConfigPathByLabel(label)
	if _, err := fs.Stat(path); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	active, _ := CurrentLabel()
	if active == label {
		if err := SwitchConfig(defaultLabel); err != nil {
			return fmt.Errorf("failed switching to Default: %w", err)
		}
	}

	return fs.Remove(path)
}
