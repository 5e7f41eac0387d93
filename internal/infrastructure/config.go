package infra

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix env prefix for viper
const EnvPrefix = "SKILLSPARK"

// runtime environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// AppConfig App option object
type AppConfig struct {
	AppID          string        `mapstructure:"app_id" json:"app_id" yaml:"app_id" validate:"required"`            // Application ID
	Host           string        `mapstructure:"host" json:"host" yaml:"host"`                                      // bind host address
	Port           int           `mapstructure:"port" json:"port" yaml:"port"`                                      // bind listen port
	Env            string        `mapstructure:"env" json:"env" yaml:"env" validate:"oneof=development production"` // runtime environment
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout"`
	SessionTimeout time.Duration `mapstructure:"session_timeout" json:"session_timeout" yaml:"session_timeout"`
	SessionRefresh time.Duration `mapstructure:"session_refresh" json:"session_refresh" yaml:"session_refresh"` // session refresh threshold
	Database       struct {
		Driver   string `mapstructure:"driver" json:"driver" yaml:"driver" validate:"required,oneof=mysql postgres"` // driver name
		Host     string `mapstructure:"host" json:"host" yaml:"host" validate:"required"`                            // server host
		MaxConn  int32  `mapstructure:"maxconn" json:"maxconn" yaml:"maxconn" validate:"min=1"`                      // maximum opening connections number
		Password string `mapstructure:"password" json:"-" yaml:"password" validate:"required"`                       // db password
		Port     int    `mapstructure:"port" json:"port" yaml:"port"`                                                // server port
		Protocol string `mapstructure:"protocol" json:"protocol" yaml:"protocol" validate:"omitempty,oneof=tcp udp"` // connection protocol, eg.tcp
		Query    string `mapstructure:"query" json:"query" yaml:"query"`                                             // DSN query parameter
		Schema   string `mapstructure:"schema" json:"schema" yaml:"schema" validate:"required"`                      // use schema
		User     string `mapstructure:"username" json:"username" yaml:"username" validate:"required"`                // db username
	} `mapstructure:"database" json:"database" yaml:"database"`
	Logging struct {
		FilePath string `mapstructure:"file_path" json:"file_path" yaml:"file_path"`                            // log file path
		Level    string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"` // global logging level
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
	Security struct {
		IDLength         int           `mapstructure:"id_length" json:"id_length" yaml:"id_length" validate:"min=8"` // length of generated ID for entities
		JWTMethod        string        `mapstructure:"jwt_method" json:"jwt_method" yaml:"jwt_method" validate:"oneof=HS256 HS512"`
		JWTSecret        string        `mapstructure:"jwt_secret" json:"-" yaml:"jwt_secret" validate:"required"`
		TokenName        string        `mapstructure:"token_name" json:"token_name" yaml:"token_name" validate:"required"`     // jwt token name set in cookie
		MaxLoginAttempts int           `mapstructure:"max_login_attempts" json:"max_login_attempts" yaml:"max_login_attempts"` // maximum login attempts
		RetryTimeout     time.Duration `mapstructure:"retry_timeout" json:"retry_timeout" yaml:"retry_timeout"`                // retry wait
	} `mapstructure:"security" json:"security" yaml:"security"`
	KVStore struct {
		Driver   string `mapstructure:"driver" json:"driver" yaml:"driver" validate:"oneof=redis memory"` // kv backend
		Host     string `mapstructure:"host" json:"host" yaml:"host"`                                     // bind host address
		Port     int    `mapstructure:"port" json:"port" yaml:"port"`                                     // bind listen port
		Password string `mapstructure:"password" json:"-" yaml:"password"`                                // password for security reasons
		DB       int    `mapstructure:"db" json:"db" yaml:"db"`                                           // redis logical database
	} `mapstructure:"kv" json:"kv" yaml:"kv"`
	Progress struct {
		MinutesPerLesson int `mapstructure:"minutes_per_lesson" json:"minutes_per_lesson" yaml:"minutes_per_lesson" validate:"min=1"` // flat duration estimate per lesson
	} `mapstructure:"progress" json:"progress" yaml:"progress"`
	DevOP struct {
		APM bool `mapstructure:"apm" json:"apm" yaml:"apm"`
	} `mapstructure:"devop" json:"devop" yaml:"devop"`
}

func registerFlags(fs *pflag.FlagSet) {
	// app
	fs.String("host", "", "binding address")
	fs.String("app_id", "skillspark", "application identifier")
	fs.String("env", EnvDevelopment, "runtime environment, can be 'development' or 'production'")
	fs.Int("port", 8081, "listening port")
	fs.Duration("request_timeout", 30*time.Second, "request timeout(m, s and h units are supported), eg.30s")
	fs.Duration("session_timeout", 30*time.Minute, "JWT lifetime(m, s and h units are supported), eg.30m")
	fs.Duration("session_refresh", 5*time.Minute, "session refresh threshold(m, s and h units are supported), eg.5m")

	// database
	fs.String("database.driver", "postgres", "database driver to use, can be 'mysql' or 'postgres'")
	fs.String("database.host", "127.0.0.1", "database host")
	fs.Int("database.port", 5432, "database server port")
	fs.String("database.protocol", "", "connection protocol(if mysql is used, this flag must be set), eg.tcp")
	fs.String("database.username", "", "database username (required)")
	fs.String("database.password", "", "database password (required)")
	fs.String("database.schema", "", "database schema (required)")
	fs.String("database.query", "", `additional DSN query parameters('?' is auto prefixed), if you work with mysql and wish to
work with time.Time, you may specify "parseTime=true"`)
	fs.Int32("database.maxconn", 50, "max connection count")

	// logging
	fs.String("logging.level", "info", "logging level")
	fs.String("logging.file_path", "", "log to file")

	// security
	fs.Int("security.id_length", 24, "set length of generated ID for entities")
	fs.String("security.jwt_method", "HS256", "hash algorithm used for JWT auth")
	fs.String("security.jwt_secret", "", "JWT secret (required)")
	fs.String("security.token_name", "skillspark_token", "cookie name to store the token")
	fs.Int("security.max_login_attempts", 3, "maximum login attempts")
	fs.Duration("security.retry_timeout", 1*time.Hour, "retry wait")

	// kv storage
	fs.String("kv.driver", "redis", "kv backend, can be 'redis' or 'memory'")
	fs.String("kv.host", "127.0.0.1", "kv host")
	fs.Int("kv.port", 6379, "kv server port")
	fs.String("kv.password", "", "kv server password")
	fs.Int("kv.db", 0, "redis logical database")

	// progress
	fs.Int("progress.minutes_per_lesson", 15, "estimated minutes spent per lesson")

	// DevOp
	fs.Bool("devop.apm", false, "enable apm metrics")
}

// InitConfig init app config using viper
func InitConfig() (*AppConfig, error) {
	return LoadConfig(pflag.CommandLine, nil)
}

// LoadConfig parse args into fs and merge them with environment variables
func LoadConfig(fs *pflag.FlagSet, args []string) (*AppConfig, error) {
	registerFlags(fs)
	if args == nil {
		pflag.Parse()
	} else if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config = new(AppConfig)
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.Logging.Level == "debug" {
		if configJSON, err := json.MarshalIndent(config, "", "  "); err == nil {
			log.Printf("App config: %s\n", string(configJSON))
		}
	}
	return config, nil
}

func validateConfig(config *AppConfig) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("mapstructure")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	if _, ok := err.(*validator.InvalidValidationError); ok {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	var msg []string
	for _, field := range err.(validator.ValidationErrors) {
		namespace := field.Namespace()
		fieldName := namespace[strings.IndexByte(namespace, '.')+1:] // trim top level namespace
		switch field.Tag() {
		case "required":
			msg = append(msg, fmt.Sprintf("%s is required", fieldName))
		case "oneof":
			msg = append(msg, fmt.Sprintf("%s must be one of (%s)", fieldName, field.Param()))
		case "min":
			msg = append(msg, fmt.Sprintf("%s must be at least %s", fieldName, field.Param()))
		default:
			msg = append(msg, fmt.Sprintf("%s is invalid", fieldName))
		}
	}
	return fmt.Errorf("failed to validate config: \n%s", strings.Join(msg, "\n"))
}
