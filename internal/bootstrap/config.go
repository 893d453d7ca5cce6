package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	KatagoPath   string `mapstructure:"KATAGO_PATH"`
	KatagoModel  string `mapstructure:"KATAGO_MODEL"`
	KatagoConfig string `mapstructure:"KATAGO_CONFIG"`
	KatagoRules  string `mapstructure:"KATAGO_RULES"`

	MaxVisits     int `mapstructure:"MAX_VISITS"`
	RevisitVisits int `mapstructure:"REVISIT_VISITS"`

	// Win-rate drop that flags a turn for the second, deeper pass.
	RevisitWinrateDrop float64 `mapstructure:"REVISIT_WINRATE_DROP"`

	// Classification thresholds: GoodCeiling < BadFloor <= HotSpotFloor.
	GoodMoveCeiling float64 `mapstructure:"GOOD_MOVE_CEILING"`
	BadMoveFloor    float64 `mapstructure:"BAD_MOVE_FLOOR"`
	HotSpotFloor    float64 `mapstructure:"HOT_SPOT_FLOOR"`

	DefaultKomi float64 `mapstructure:"DEFAULT_KOMI"`

	RedisUrl    string `mapstructure:"REDIS_URL"`
	MongoUri    string `mapstructure:"MONGO_URI"`
	IsLocalCors bool   `mapstructure:"LOCAL_CORS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	viper.SetDefault("KATAGO_PATH", "./katago")
	viper.SetDefault("KATAGO_RULES", "tromp-taylor")
	viper.SetDefault("MAX_VISITS", 1600)
	viper.SetDefault("REVISIT_VISITS", 6400)
	viper.SetDefault("REVISIT_WINRATE_DROP", 0.10)
	viper.SetDefault("GOOD_MOVE_CEILING", 0.02)
	viper.SetDefault("BAD_MOVE_FLOOR", 0.05)
	viper.SetDefault("HOT_SPOT_FLOOR", 0.20)
	viper.SetDefault("DEFAULT_KOMI", 6.5)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
