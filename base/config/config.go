// Package config loads the yaml config into viper. Every key can be overridden by an environment
// variable named after it, e.g. MONGO_URI for mongo.uri.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultPath = "infra/configs/config.yaml"

// Load parses --config from args and reads the file it names
func Load(name string, args []string) error {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	path := fs.String("config", DefaultPath, "path of the yaml config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return readFile(*path)
}

func readFile(path string) error {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}
