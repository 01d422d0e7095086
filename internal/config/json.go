package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and a
// string-friendly [Duration] type, so that operators can keep a readable
// config file alongside env vars and flags.
type StructuredJSONConfig struct {
	App struct {
		AdminEmail    string `json:"admin_email"`
		AdminPassword string `json:"admin_password"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Images struct {
			Dir string `json:"dir"`
			S3  struct {
				Bucket    string `json:"bucket"`
				Region    string `json:"region"`
				Endpoint  string `json:"endpoint"`
				AccessKey string `json:"access_key"`
				SecretKey string `json:"secret_key"`
			} `json:"s3,omitempty"`
		} `json:"images,omitempty"`
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
		App: App{
			AdminEmail:    jsonCfg.App.AdminEmail,
			AdminPassword: jsonCfg.App.AdminPassword,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Images: Images{
				Dir: jsonCfg.Storage.Images.Dir,
				S3: S3{
					Bucket:    jsonCfg.Storage.Images.S3.Bucket,
					Region:    jsonCfg.Storage.Images.S3.Region,
					Endpoint:  jsonCfg.Storage.Images.S3.Endpoint,
					AccessKey: jsonCfg.Storage.Images.S3.AccessKey,
					SecretKey: jsonCfg.Storage.Images.S3.SecretKey,
				},
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
