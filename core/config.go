package core

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		SchoolName   string
		SecretKey    string
		RollbarToken string

		Server   ServerConfig
		Database DatabaseConfig
		Email    EmailConfig
		Report   ReportConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugAddress    string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       int
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	EmailConfig struct {
		SendgridApiKey   string
		DefaultFromEmail string
	}

	// ReportConfig holds the page geometry (millimetres) and branding of generated reports.
	ReportConfig struct {
		SchoolYear   int
		LogoSource   string // file path or http(s) URL; empty means text-only header
		LogoTimeout  time.Duration
		FontFamily   string
		PageWidth    float64
		PageHeight   float64
		MarginLeft   float64
		MarginRight  float64
		MarginBottom float64
		HeaderHeight float64
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c EmailConfig) FromAddress() mail.Address {
	addr, err := mail.ParseAddress(c.DefaultFromEmail)
	if err != nil {
		return mail.Address{Address: c.DefaultFromEmail}
	}
	return *addr
}

// NewConfig reads the configuration from defaults, the optional config/.env.<env> file and the environment.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Registro Escolar")
	v.SetDefault("schoolName", "Redland School")
	v.SetDefault("secretKey", "k2v$9n-x3@q!t8e(f)w0zb7m+4ru_jy5h1d6&lp*gsoa^c")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "registro")
	v.SetDefault("database.user", "registro")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("email.sendgridApiKey", "")
	v.SetDefault("email.defaultFromEmail", "Registro Escolar <noreply@localhost>")

	v.SetDefault("report.schoolYear", 2026)
	v.SetDefault("report.logoSource", "")
	v.SetDefault("report.logoTimeout", 3*time.Second)
	v.SetDefault("report.fontFamily", "Helvetica")
	v.SetDefault("report.pageWidth", 297.0) // A4 landscape
	v.SetDefault("report.pageHeight", 210.0)
	v.SetDefault("report.marginLeft", 10.0)
	v.SetDefault("report.marginRight", 10.0)
	v.SetDefault("report.marginBottom", 15.0)
	v.SetDefault("report.headerHeight", 28.0)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		SchoolName:   v.GetString("schoolName"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugAddress:    v.GetString("server.debugAddress"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("database.engine"),
			Host:       v.GetString("database.host"),
			Port:       v.GetInt("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
		Email: EmailConfig{
			SendgridApiKey:   v.GetString("email.sendgridApiKey"),
			DefaultFromEmail: v.GetString("email.defaultFromEmail"),
		},
		Report: ReportConfig{
			SchoolYear:   v.GetInt("report.schoolYear"),
			LogoSource:   v.GetString("report.logoSource"),
			LogoTimeout:  v.GetDuration("report.logoTimeout"),
			FontFamily:   v.GetString("report.fontFamily"),
			PageWidth:    v.GetFloat64("report.pageWidth"),
			PageHeight:   v.GetFloat64("report.pageHeight"),
			MarginLeft:   v.GetFloat64("report.marginLeft"),
			MarginRight:  v.GetFloat64("report.marginRight"),
			MarginBottom: v.GetFloat64("report.marginBottom"),
			HeaderHeight: v.GetFloat64("report.headerHeight"),
		},
	}
	return conf, nil
}
