package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Shikhar-srivastav/task-manager/internal/flagx"
	"github.com/Shikhar-srivastav/task-manager/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. It uses
// timex.Duration for interval fields, which parses both string values such
// as "30m" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	SecretKey            string         `json:"secret_key"`
	SessionTokenValidity timex.Duration `json:"session_token_validity"`
	BcryptCost           int            `json:"bcrypt_cost"`
	AvatarSize           int            `json:"avatar_size"`
	AvatarMaxUploadBytes int64          `json:"avatar_max_upload_bytes"`
	AvatarStorage        string         `json:"avatar_storage"`
	S3RootUser           string         `json:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	SMTPHost             string         `json:"smtp_host"`
	SMTPPort             int            `json:"smtp_port"`
	SMTPUser             string         `json:"smtp_user"`
	SMTPPassword         string         `json:"smtp_password"`
	MailFrom             string         `json:"mail_from"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named, nothing
// is loaded. In case of an error reading or parsing the file, the function
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionTokenValidity = time.Duration(c.SessionTokenValidity.Duration)
	config.BcryptCost = c.BcryptCost
	config.AvatarSize = c.AvatarSize
	config.AvatarMaxUploadBytes = c.AvatarMaxUploadBytes
	config.AvatarStorage = c.AvatarStorage
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.MailFrom = c.MailFrom
}
