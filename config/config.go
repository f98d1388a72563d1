package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

var Cfg *AppConfig

type AppConfig struct {
	Dev      bool           `yaml:"dev"`
	Server   ServerConfig   `yaml:"server"`
	Redis    Redis          `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Supabase Supabase       `yaml:"supabase"`
	OpenAI   OpenAI         `yaml:"openai"`
	Storage  StorageConfig  `yaml:"storage"`
	Frontend FrontendConfig `yaml:"frontend"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
}

type Supabase struct {
	SupabaseUrl       string `yaml:"supabaseUrl"`
	SupabaseApiKey    string `yaml:"supabaseApiKey"`
	SupabaseSecretKey string `yaml:"supabaseSecretKey"`
	Jwt               string `yaml:"jwt"`
}

type OpenAI struct {
	BaseUrl string `yaml:"baseUrl"`
	ApiKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
}

type StorageConfig struct {
	Bucket           string `yaml:"bucket"`
	SignedUrlExpiry  int    `yaml:"signed_url_expiry"`  // seconds, download links in responses
	DocumentUrlHours int    `yaml:"document_url_hours"` // translated document links
}

type FrontendConfig struct {
	BaseUrl string `yaml:"baseUrl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
}

func defaults() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Addr: ":3001"},
		Redis:  Redis{Host: "127.0.0.1", Port: 6379},
		Log:    LogConfig{Level: "info", Output: "stdout"},
		OpenAI: OpenAI{
			BaseUrl: "https://api.openai.com",
			Model:   "gpt-4o-mini",
		},
		Storage: StorageConfig{
			Bucket:           "documents",
			SignedUrlExpiry:  3600,
			DocumentUrlHours: 24,
		},
		Frontend: FrontendConfig{BaseUrl: "http://localhost:3000"},
	}
}

func init() {
	Cfg = defaults()

	file, err := os.Open("config.yml")
	if err != nil {
		// No config file: run on defaults. Tests and local tooling
		// override config.Cfg directly.
		return
	}
	defer func() {
		err := file.Close()
		if err != nil {
			log.Printf("Error close config file: %v", err)
		}
	}()

	if err := yaml.NewDecoder(file).Decode(Cfg); err != nil {
		log.Fatalf("Error decoding config file: %v", err)
	}
}
