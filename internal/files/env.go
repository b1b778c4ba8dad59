package files

import (
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".on-track"
)

// ResolveBasePath determines where day files are stored, defaulting to
// ~/.on-track. The location can be overridden by exporting ONTRACK_HOME or
// by a `home` key in an .ontrack config file in the working directory.
func ResolveBasePath() (string, error) {
	v := viper.New()
	v.SetConfigName(".ontrack")
	v.SetEnvPrefix("ONTRACK")
	v.AutomaticEnv()
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return "", err
		}
	}

	if override := strings.TrimSpace(v.GetString("home")); override != "" {
		return homedir.Expand(override)
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}
