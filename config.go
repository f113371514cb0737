package numint

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _numintconfig{}
)

// _numintconfig is a "hidden" struct, just use `numintConfig`
type _numintconfig struct {
	defaultMethod string
	methodOptions map[string]Options
}

// numintConfig returns the numint configuration, reading conf.toml from the
// directory named by the NUMINT_CONFIG environment variable on first use.
// An unset NUMINT_CONFIG yields the built-in defaults so the registry works
// without any configuration file.
func numintConfig() _numintconfig {
	if cfgLoaded {
		return config
	}
	cfgLoaded = true
	confPath := os.Getenv("NUMINT_CONFIG")
	if confPath == "" {
		config = _numintconfig{}
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}

	cfg := _numintconfig{
		defaultMethod: viper.GetString("integration.default_method"),
		methodOptions: make(map[string]Options),
	}
	for method, raw := range viper.GetStringMap("methods") {
		table, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		opts := Options{}
		for key := range table {
			// viper lowercases keys; Options.Value matches case-insensitively.
			opts[key] = viper.GetFloat64(fmt.Sprintf("methods.%s.%s", method, key))
		}
		cfg.methodOptions[method] = opts
	}
	config = cfg
	return config
}
