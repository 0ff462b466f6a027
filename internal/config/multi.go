package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const DefaultLabel = "Default"

func ConfigRoot() string {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "treader")
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treader")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "treader")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func checkLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("invalid label %q", label)
	}

	return nil
}

func profileFile(label string) string {
	return filepath.Join(ConfigsDir(), label+".yaml")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func setCurrentLabel(label string) error {
	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil || label == "" {
		return "", ErrNoConfig
	}

	return profileFile(label), nil
}

// ConfigPathByLabel returns the file of an existing profile.
func ConfigPathByLabel(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}

	path := profileFile(label)
	if !exists(path) {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return path, nil
}

// LoadProfile reads a profile without applying any overrides.
func LoadProfile(label string) (*Config, error) {
	path, err := ConfigPathByLabel(label)
	if err != nil {
		return nil, err
	}

	return loadYAML(path)
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

	entries, err := os.ReadDir(ConfigsDir())
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
	if _, err := ConfigPathByLabel(label); err != nil {
		return err
	}

	return setCurrentLabel(label)
}

// AddConfig creates a profile from an existing YAML file. The file must
// parse as a config.
func AddConfig(label, srcPath string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	dst := profileFile(label)
	if exists(dst) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if _, err := loadYAML(srcPath); err != nil {
		return "", fmt.Errorf("invalid config %s: %w", srcPath, err)
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}

	return dst, os.WriteFile(dst, raw, 0644)
}

func CreateEmptyConfig(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profileFile(label)
	if exists(path) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

func RenameConfig(oldLabel, newLabel string) error {
	if err := checkLabel(newLabel); err != nil {
		return err
	}

	oldPath, err := ConfigPathByLabel(oldLabel)
	if err != nil {
		return err
	}

	newPath := profileFile(newLabel)
	if exists(newPath) {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == oldLabel {
		return setCurrentLabel(newLabel)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active profile switches to
// Default. It reports whether that fallback happened.
func RemoveConfig(label string) (bool, error) {
	if label == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}

	path, err := ConfigPathByLabel(label)
	if err != nil {
		return false, err
	}

	fellBack := false
	if active, _ := CurrentLabel(); active == label {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		fellBack = true
	}

	return fellBack, os.Remove(path)
}

// InitDefaultConfig creates the Default profile if missing and makes it
// active. os.ErrExist is returned alongside the path when it already existed.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := profileFile(DefaultLabel)

	if exists(defPath) {
		_ = setCurrentLabel(DefaultLabel)
		return defPath, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	return defPath, setCurrentLabel(DefaultLabel)
}
