package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/organizer/pkg/errors"
)

// ToTOML renders cfg as a config file
func ToTOML(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}
	return data, nil
}
