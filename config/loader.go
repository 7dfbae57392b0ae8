package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Engine defaults mirror the upstream feeds' pacing: feeds refresh at most
// every 30s and the producers time out slow consumers around 10s.
const (
	DefaultRefreshIntervalSec = 30
	DefaultTimeoutSec         = 10
	DefaultOnTimeThresholdSec = 180
)

// Default builds the built-in configuration: the three Breton networks with
// their public feed URLs and the default engine tunables.
func Default() AppConfig {
	return AppConfig{
		Engine: EngineConfig{
			RefreshIntervalSec: DefaultRefreshIntervalSec,
			TimeoutSec:         DefaultTimeoutSec,
			OnTimeThresholdSec: DefaultOnTimeThresholdSec,
		},
		Networks: []NetworkConfig{
			{
				ID:   "bibus",
				Name: "Bibus (Brest)",
				Feeds: FeedURLs{
					VehiclePositions: "https://proxy.transport.data.gouv.fr/resource/bibus-brest-gtfs-rt-vehicle-position",
					TripUpdates:      "https://proxy.transport.data.gouv.fr/resource/bibus-brest-gtfs-rt-trip-update",
					ServiceAlerts:    "https://proxy.transport.data.gouv.fr/resource/bibus-brest-gtfs-rt-alerts",
					Events:           "https://api.openagenda.com/v2/events?search=brest&limit=10",
					Weather:          "https://www.infoclimat.fr/public-api/gfs/json?_ll=48.4475,-4.4181",
					Static:           "https://s3.eu-west-1.amazonaws.com/files.orchestra.ratpdev.com/networks/bibus/exports/medias.zip",
				},
			},
			{
				ID:   "star",
				Name: "STAR (Rennes)",
				Feeds: FeedURLs{
					VehiclePositions: "https://proxy.transport.data.gouv.fr/resource/star-rennes-gtfs-rt-vehicle-position",
					TripUpdates:      "https://proxy.transport.data.gouv.fr/resource/star-rennes-gtfs-rt-trip-update",
					ServiceAlerts:    "https://proxy.transport.data.gouv.fr/resource/star-rennes-gtfs-rt-alerts",
				},
			},
			{
				ID:   "tub",
				Name: "TUB (Saint-Brieuc)",
				Feeds: FeedURLs{
					VehiclePositions: "https://proxy.transport.data.gouv.fr/resource/tub-saint-brieuc-gtfs-rt-vehicle-position",
					TripUpdates:      "https://proxy.transport.data.gouv.fr/resource/tub-saint-brieuc-gtfs-rt-trip-update",
					ServiceAlerts:    "https://proxy.transport.data.gouv.fr/resource/tub-saint-brieuc-gtfs-rt-alerts",
				},
			},
		},
	}
}

// Load returns the application configuration: built-in defaults, overlaid
// with a YAML file when present, then with environment variables (a .env
// file is honoured if one exists). An empty path searches the usual
// locations; a named path must exist. The result is validated before return.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	paths := []string{"config.yml", "./config/config.yml"}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return AppConfig{}, err
		}
		paths = []string{path}
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return AppConfig{}, err
		}
		mergeFile(&cfg, fileCfg)
		break
	}

	applyEnv(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Engine); err != nil {
		return AppConfig{}, err
	}
	for _, n := range cfg.Networks {
		if err := v.Struct(n); err != nil {
			return AppConfig{}, err
		}
	}
	if cfg.Engine.RefreshIntervalSec == 0 {
		cfg.Engine.RefreshIntervalSec = DefaultRefreshIntervalSec
	}
	if cfg.Engine.TimeoutSec == 0 {
		cfg.Engine.TimeoutSec = DefaultTimeoutSec
	}
	if cfg.Engine.OnTimeThresholdSec == 0 {
		cfg.Engine.OnTimeThresholdSec = DefaultOnTimeThresholdSec
	}
	return cfg, nil
}

// mergeFile overlays non-zero file values onto the defaults. A networks list
// in the file replaces the default list wholesale.
func mergeFile(cfg *AppConfig, file AppConfig) {
	if file.Engine.RefreshIntervalSec > 0 {
		cfg.Engine.RefreshIntervalSec = file.Engine.RefreshIntervalSec
	}
	if file.Engine.TimeoutSec > 0 {
		cfg.Engine.TimeoutSec = file.Engine.TimeoutSec
	}
	if file.Engine.OnTimeThresholdSec > 0 {
		cfg.Engine.OnTimeThresholdSec = file.Engine.OnTimeThresholdSec
	}
	if len(file.Networks) > 0 {
		cfg.Networks = file.Networks
	}
}

// applyEnv applies the environment overrides the original deployment used.
// The feed URL variables target the first configured network.
func applyEnv(cfg *AppConfig) {
	_ = godotenv.Load()

	if v, ok := envInt("GTFS_REFRESH_INTERVAL"); ok {
		cfg.Engine.RefreshIntervalSec = v
	}
	if v, ok := envInt("GTFS_FETCH_TIMEOUT"); ok {
		cfg.Engine.TimeoutSec = v
	}
	if v, ok := envInt("GTFS_ON_TIME_THRESHOLD"); ok {
		cfg.Engine.OnTimeThresholdSec = v
	}

	if len(cfg.Networks) == 0 {
		return
	}
	feeds := &cfg.Networks[0].Feeds
	overrideURL := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	overrideURL(&feeds.VehiclePositions, "GTFS_VEHICLE_POSITIONS_URL")
	overrideURL(&feeds.TripUpdates, "GTFS_TRIP_UPDATES_URL")
	overrideURL(&feeds.ServiceAlerts, "GTFS_SERVICE_ALERTS_URL")
	overrideURL(&feeds.Events, "OPEN_AGENDA_URL")
	overrideURL(&feeds.Weather, "WEATHER_INFOCLIMAT_URL")
	overrideURL(&feeds.Static, "GTFS_STATIC_URL")
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
