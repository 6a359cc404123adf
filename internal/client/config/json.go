package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/example/booking-calendar/internal/flagx"
)

// duration allows JSON configs to specify intervals either as strings like
// "30s" or as integer nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// values are copied into the runtime Config.
type jsonConfig struct {
	ServerEndpointAddr  string   `json:"server_endpoint_addr"`
	DatabaseDSN         string   `json:"database_dsn"`
	OnlineCheckInterval duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags (flagx.JsonConfigFlags); when absent,
// nothing is loaded. Only fields present in the file override the config.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.OnlineCheckInterval != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval)
	}
}
