package session

import (
	"time"

	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/player"
	"github.com/spf13/viper"
)

// OptionsFromConfig fills Options for catalog from the loaded configuration.
// An empty surface name selects the configured default player.
func OptionsFromConfig(catalog media.Catalog, surfaceName string) (Options, error) {
	if surfaceName == "" {
		surfaceName = viper.GetString(key.Player)
	}

	surface, err := player.New(surfaceName)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Catalog:         catalog,
		Surface:         surface,
		ActivationDelay: time.Duration(viper.GetInt(key.ActivationDelayMs)) * time.Millisecond,
		SkipSeconds:     viper.GetFloat64(key.SkipSeconds),
	}, nil
}
