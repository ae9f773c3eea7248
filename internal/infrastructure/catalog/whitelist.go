package catalog

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"cornscan/internal/domain/entity"
)

// whitelistFile YAML-файл белого списка:
//
//	diseases:
//	  maize_streak_virus: Maize Streak Virus (MSV)
type whitelistFile struct {
	Diseases map[string]string `yaml:"diseases"`
}

// LoadWhitelist читает белый список из файла. Пустой путь означает встроенный список.
func LoadWhitelist(path string) (entity.Whitelist, error) {
	if path == "" {
		return entity.DefaultWhitelist(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Whitelist{}, errors.Wrapf(err, "read whitelist %s", path)
	}

	var f whitelistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return entity.Whitelist{}, errors.Wrapf(err, "parse whitelist %s", path)
	}
	if len(f.Diseases) == 0 {
		return entity.Whitelist{}, errors.Errorf("whitelist %s has no diseases", path)
	}
	for label, name := range f.Diseases {
		if strings.TrimSpace(label) == "" || strings.TrimSpace(name) == "" {
			return entity.Whitelist{}, errors.Errorf("whitelist %s: empty label or display name", path)
		}
	}

	return entity.NewWhitelist(f.Diseases), nil
}
