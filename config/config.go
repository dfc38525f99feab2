package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// The ini file is looked for in the working directory.
const FILENAME = "gdedit.ini"

type Config struct {
	// Dir is the save directory (the one holding the _<name> character directories)
	Dir string
	// Backup: keep the previous file when saving over a character
	Backup bool
	// Journal is where the change journal lives.  Empty means <Dir>/.gdedit-journal
	Journal string
	// Settle is how long the watcher waits after a write before reading the file
	Settle   time.Duration
	LogLevel string
}

func Defaults() Config {
	wd, _ := os.Getwd()
	return Config{
		Dir:      wd,
		Backup:   true,
		Settle:   5 * time.Second,
		LogLevel: "info",
	}
}

// Load reads the ini file at path over the defaults.  A missing file is fine; a broken one is not.
// dirFlag, if set, beats whatever the file says.
func Load(path string, dirFlag string) (Config, error) {
	cfg := Defaults()

	file, err := ini.Load(path)
	switch {
	case err == nil:
		// default section can be represented as empty string
		sec := file.Section("")
		if dir := sec.Key("dir").String(); dir != "" {
			cfg.Dir = dir
		}
		if sec.HasKey("backup") {
			if cfg.Backup, err = sec.Key("backup").Bool(); err != nil {
				return cfg, errors.Wrapf(err, "%s: backup", path)
			}
		}
		cfg.Journal = sec.Key("journal").String()
		if sec.HasKey("settle") {
			if cfg.Settle, err = sec.Key("settle").Duration(); err != nil {
				return cfg, errors.Wrapf(err, "%s: settle", path)
			}
		}
		cfg.LogLevel = sec.Key("log_level").MustString(cfg.LogLevel)
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, errors.Wrapf(err, "loading %s", path)
	}

	if dirFlag != "" {
		cfg.Dir = dirFlag
	}
	if cfg.Journal == "" {
		cfg.Journal = filepath.Join(cfg.Dir, ".gdedit-journal")
	}
	return cfg, nil
}

// Save writes cfg as an ini file.
func (c Config) Save(path string) error {
	file := ini.Empty()
	sec := file.Section("")
	sec.Key("dir").SetValue(c.Dir)
	sec.Key("backup").SetValue(boolString(c.Backup))
	sec.Key("journal").SetValue(c.Journal)
	sec.Key("settle").SetValue(c.Settle.String())
	sec.Key("log_level").SetValue(c.LogLevel)
	return file.SaveTo(path)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
