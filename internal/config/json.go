package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Auth struct {
		SecretKey                string `json:"secret_key"`
		Algorithm                string `json:"algorithm"`
		TokenIssuer              string `json:"token_issuer"`
		AccessTokenExpireMinutes int    `json:"access_token_expire_minutes"`
		RefreshTokenExpireDays   int    `json:"refresh_token_expire_days"`
		MaxLoginFails            int    `json:"max_login_fails"`
		AdminGroupID             string `json:"admin_group_id"`
	} `json:"auth,omitempty"`

	Menu struct {
		MaxDepth int `json:"max_depth"`
	} `json:"menu,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			SecretKey:                jsonCfg.Auth.SecretKey,
			Algorithm:                jsonCfg.Auth.Algorithm,
			TokenIssuer:              jsonCfg.Auth.TokenIssuer,
			AccessTokenExpireMinutes: jsonCfg.Auth.AccessTokenExpireMinutes,
			RefreshTokenExpireDays:   jsonCfg.Auth.RefreshTokenExpireDays,
			MaxLoginFails:            jsonCfg.Auth.MaxLoginFails,
			AdminGroupID:             jsonCfg.Auth.AdminGroupID,
		},
		Menu: Menu{
			MaxDepth: jsonCfg.Menu.MaxDepth,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
