package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host string
		Addr string
	}

	// UpstreamConfig describes the third-party ClasseViva REST service.
	// Every call carries the fixed device identity and API key headers.
	UpstreamConfig struct {
		BaseURL   string
		Host      string
		APIKey    string
		UserAgent string
		Timeout   time.Duration
	}

	// DemoConfig is an operator-supplied demo credential pair accepted by
	// the mock provider in addition to the two reserved pairs.
	DemoConfig struct {
		UID  string
		Pass string
	}

	RollbarConfig struct {
		Token string
	}

	ClientConfig struct {
		// BaseURL of this system's own HTTP surface, used by the CLI client.
		BaseURL string
		// SessionFile holds the persisted bearer token and identity record.
		SessionFile string
	}

	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		Server   ServerConfig
		Upstream UpstreamConfig
		Demo     DemoConfig
		Rollbar  RollbarConfig
		Client   ClientConfig
	}
)

// NewConfig loads configuration from the environment, with an optional
// config/.env.<env> file loaded first (ignored when absent).
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "SysRegister")
	v.SetDefault("build", "dev")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("upstream.baseURL", "https://web.spaggiari.eu/rest/v1")
	v.SetDefault("upstream.host", "classeviva.spaggiari.eu")
	v.SetDefault("upstream.apiKey", "Tg1NWEwNGIgIC0K")
	v.SetDefault("upstream.userAgent", "CVVS/std/4.1.7 Android/10")
	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("demo.uid", "")
	v.SetDefault("demo.pass", "")
	v.SetDefault("rollbar.token", "")
	v.SetDefault("client.baseURL", "http://localhost:8000")
	v.SetDefault("client.sessionFile", defaultSessionFile())

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("env", env)
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// flat keys kept from the original deployment
	bindAlias(v, "demo.uid", "DEMO_UID")
	bindAlias(v, "demo.pass", "DEMO_PASS")
	bindAlias(v, "rollbar.token", "ROLLBAR_TOKEN")

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		log.Fatalf("config.Unmarshal: %v", err)
	}
	return conf
}

func bindAlias(v *viper.Viper, key, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		v.Set(key, val)
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sysregister-session.json"
	}
	return filepath.Join(home, ".sysregister", "session.json")
}
