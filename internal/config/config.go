package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roofsolar/planner/pkg/core"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "roofsolar.cfg.json"

// EnvPrefix prefixes environment overrides: ROOFSOLAR_SERVER_PORT sets
// server.port.
const EnvPrefix = "ROOFSOLAR"

// GeometryConfig holds the pixel geometry constants.
type GeometryConfig struct {
	MetersPerPixel float64 `json:"metersPerPixel" mapstructure:"metersPerPixel"`
	CloseRadius    float64 `json:"closeRadius" mapstructure:"closeRadius"`
}

// LayoutConfig holds the estimate factors and the export grid width.
type LayoutConfig struct {
	EfficiencyFactor  float64 `json:"efficiencyFactor" mapstructure:"efficiencyFactor"`
	AnnualYieldFactor float64 `json:"annualYieldFactor" mapstructure:"annualYieldFactor"`
	PanelsPerRow      int     `json:"panelsPerRow" mapstructure:"panelsPerRow"`
}

// ImageryConfig holds satellite picture settings.
type ImageryConfig struct {
	Zoom      int     `json:"zoom" mapstructure:"zoom"`
	MinZoom   int     `json:"minZoom" mapstructure:"minZoom"`
	MaxZoom   int     `json:"maxZoom" mapstructure:"maxZoom"`
	Width     int     `json:"width" mapstructure:"width"`
	Height    int     `json:"height" mapstructure:"height"`
	PanStep   float64 `json:"panStep" mapstructure:"panStep"`
	// CacheSize is the number of satellite pictures kept in memory.
	CacheSize int     `json:"cacheSize" mapstructure:"cacheSize"`
}

// GoogleConfig holds Google Maps Platform settings.
type GoogleConfig struct {
	APIKey       string        `json:"apiKey" mapstructure:"apiKey"`
	GeocodeURL   string        `json:"geocodeUrl" mapstructure:"geocodeUrl"`
	StaticMapURL string        `json:"staticMapUrl" mapstructure:"staticMapUrl"`
	Region       string        `json:"region" mapstructure:"region"`
	Language     string        `json:"language" mapstructure:"language"`
	Timeout      time.Duration `json:"timeout" mapstructure:"timeout"`
}

// ServerConfig holds HTTP shell settings.
type ServerConfig struct {
	Host            string        `json:"host" mapstructure:"host"`
	Port            int           `json:"port" mapstructure:"port"`
	AllowedOrigins  []string      `json:"allowedOrigins" mapstructure:"allowedOrigins"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" mapstructure:"shutdownTimeout"`
}

// Addr is host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ExportConfig holds file export settings.
type ExportConfig struct {
	OutputDir    string `json:"outputDir" mapstructure:"outputDir"`
	StampAddress bool   `json:"stampAddress" mapstructure:"stampAddress"`
	DXF          bool   `json:"dxf" mapstructure:"dxf"`
}

// CatalogConfig selects the address catalog database.
type CatalogConfig struct {
	Driver   string `json:"driver" mapstructure:"driver"`
	Path     string `json:"path" mapstructure:"path"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	Seed     bool   `json:"seed" mapstructure:"seed"`
	Limit    int    `json:"limit" mapstructure:"limit"`
}

// InfluxConfig holds the layout metrics sink settings.
type InfluxConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Protocol string `json:"protocol" mapstructure:"protocol"`
	Token    string `json:"token" mapstructure:"token"`
	Org      string `json:"org" mapstructure:"org"`
	Bucket   string `json:"bucket" mapstructure:"bucket"`
}

// GraylogConfig holds the GELF log sink settings.
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Defaults and
// environment overrides stay in effect when the file cannot be read; the
// error is returned so callers can log it.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("geometry.metersPerPixel", 0.05)
	viper.SetDefault("geometry.closeRadius", 20.0)

	viper.SetDefault("layout.efficiencyFactor", 0.8)
	viper.SetDefault("layout.annualYieldFactor", 1200.0)
	viper.SetDefault("layout.panelsPerRow", 10)

	viper.SetDefault("panel.width", 2.0)
	viper.SetDefault("panel.height", 1.0)
	viper.SetDefault("panel.spacing", 0.1)
	viper.SetDefault("panel.edgeMargin", 0.5)
	viper.SetDefault("panel.capacityWatts", 400.0)

	viper.SetDefault("imagery.zoom", 19)
	viper.SetDefault("imagery.minZoom", 15)
	viper.SetDefault("imagery.maxZoom", 21)
	viper.SetDefault("imagery.width", 600)
	viper.SetDefault("imagery.height", 400)
	viper.SetDefault("imagery.panStep", 0.002)
	viper.SetDefault("imagery.cacheSize", 64)

	viper.SetDefault("google.apiKey", "")
	viper.SetDefault("google.geocodeUrl", "https://maps.googleapis.com/maps/api/geocode/json")
	viper.SetDefault("google.staticMapUrl", "https://maps.googleapis.com/maps/api/staticmap")
	viper.SetDefault("google.region", "kr")
	viper.SetDefault("google.language", "ko")
	viper.SetDefault("google.timeout", "10s")

	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowedOrigins", []string{"*"})
	viper.SetDefault("server.shutdownTimeout", "10s")

	viper.SetDefault("export.outputDir", "./exports")
	viper.SetDefault("export.stampAddress", false)
	viper.SetDefault("export.dxf", true)

	viper.SetDefault("catalog.driver", "sqlite")
	viper.SetDefault("catalog.path", ":memory:")
	viper.SetDefault("catalog.host", "localhost")
	viper.SetDefault("catalog.port", "5432")
	viper.SetDefault("catalog.username", "postgres")
	viper.SetDefault("catalog.password", "postgres")
	viper.SetDefault("catalog.database", "roofsolar")
	viper.SetDefault("catalog.seed", true)
	viper.SetDefault("catalog.limit", 5)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "roofsolar")
	viper.SetDefault("influx.bucket", "layouts")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "roofsolar")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetGeometryConfig returns the geometry settings.
func GetGeometryConfig() GeometryConfig {
	return GeometryConfig{
		MetersPerPixel: viper.GetFloat64("geometry.metersPerPixel"),
		CloseRadius:    viper.GetFloat64("geometry.closeRadius"),
	}
}

// GetLayoutConfig returns the estimate settings.
func GetLayoutConfig() LayoutConfig {
	return LayoutConfig{
		EfficiencyFactor:  viper.GetFloat64("layout.efficiencyFactor"),
		AnnualYieldFactor: viper.GetFloat64("layout.annualYieldFactor"),
		PanelsPerRow:      viper.GetInt("layout.panelsPerRow"),
	}
}

// GetPanelDefaults returns the panel a new session starts with.
func GetPanelDefaults() core.PanelConfig {
	return core.PanelConfig{
		Width:         viper.GetFloat64("panel.width"),
		Height:        viper.GetFloat64("panel.height"),
		Spacing:       viper.GetFloat64("panel.spacing"),
		EdgeMargin:    viper.GetFloat64("panel.edgeMargin"),
		CapacityWatts: viper.GetFloat64("panel.capacityWatts"),
	}
}

// GetImageryConfig returns the satellite picture settings.
func GetImageryConfig() ImageryConfig {
	return ImageryConfig{
		Zoom:      viper.GetInt("imagery.zoom"),
		MinZoom:   viper.GetInt("imagery.minZoom"),
		MaxZoom:   viper.GetInt("imagery.maxZoom"),
		Width:     viper.GetInt("imagery.width"),
		Height:    viper.GetInt("imagery.height"),
		PanStep:   viper.GetFloat64("imagery.panStep"),
		CacheSize: viper.GetInt("imagery.cacheSize"),
	}
}

// GetGoogleConfig returns the Google Maps Platform settings.
func GetGoogleConfig() GoogleConfig {
	return GoogleConfig{
		APIKey:       viper.GetString("google.apiKey"),
		GeocodeURL:   viper.GetString("google.geocodeUrl"),
		StaticMapURL: viper.GetString("google.staticMapUrl"),
		Region:       viper.GetString("google.region"),
		Language:     viper.GetString("google.language"),
		Timeout:      viper.GetDuration("google.timeout"),
	}
}

// GetServerConfig returns the HTTP shell settings.
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Host:            viper.GetString("server.host"),
		Port:            viper.GetInt("server.port"),
		AllowedOrigins:  viper.GetStringSlice("server.allowedOrigins"),
		ShutdownTimeout: viper.GetDuration("server.shutdownTimeout"),
	}
}

// GetExportConfig returns the file export settings.
func GetExportConfig() ExportConfig {
	return ExportConfig{
		OutputDir:    viper.GetString("export.outputDir"),
		StampAddress: viper.GetBool("export.stampAddress"),
		DXF:          viper.GetBool("export.dxf"),
	}
}

// GetCatalogConfig returns the address catalog settings.
func GetCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Driver:   viper.GetString("catalog.driver"),
		Path:     viper.GetString("catalog.path"),
		Host:     viper.GetString("catalog.host"),
		Port:     viper.GetString("catalog.port"),
		Username: viper.GetString("catalog.username"),
		Password: viper.GetString("catalog.password"),
		Database: viper.GetString("catalog.database"),
		Seed:     viper.GetBool("catalog.seed"),
		Limit:    viper.GetInt("catalog.limit"),
	}
}

// GetInfluxConfig returns the metrics sink settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetGraylogConfig returns the GELF sink settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
