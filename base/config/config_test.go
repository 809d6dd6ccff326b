package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const yaml = `
http:
  port: 8080
mongo:
  uri: mongodb://localhost:27017
ledger:
  chainId: 31337
`

func TestLoad(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")

	req.NoError(Load("test", []string{"--config", path}))
	req.Equal(8080, viper.GetInt("http.port"))
	req.Equal(int64(31337), viper.GetInt64("ledger.chainId"))
	req.Equal("mongodb://mongo:27017", viper.GetString("mongo.uri"))
}

func TestLoadMissingFile(t *testing.T) {
	require.Error(t, Load("test", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))
}

func TestLoadUnknownFlag(t *testing.T) {
	require.Error(t, Load("test", []string{"--port", "1"}))
}
