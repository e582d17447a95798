package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación anfitriona (lectura vía
// Viper desde env y opcionalmente archivo). El escenario de simulación
// (catálogo, BOMs, proveedores, stock inicial) vive aparte, en el JSON que
// apunta Sim.ScenarioPath.
type Config struct {
	App AppConfig
	Sim SimConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

// SimConfig parámetros del anfitrión para el motor de simulación.
type SimConfig struct {
	ScenarioPath string // ruta al JSON de escenario
	Seed         int64  // 0 = usar la semilla del escenario (o 1 si tampoco hay)
}

// Load lee la configuración desde variables de entorno (y opcionalmente un
// archivo .env en el directorio actual). Las env vars tienen prioridad.
// Nombres esperados: APP_ENV, APP_NAME, LOG_LEVEL, SCENARIO_PATH, SIM_SEED.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env (se ignora si no existe)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "fabrica-sim"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Sim: SimConfig{
			ScenarioPath: getString(v, "SCENARIO_PATH", "config_initial.json"),
			Seed:         getInt64(v, "SIM_SEED", 0),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt64(v *viper.Viper, key string, def int64) int64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.ParseInt(v.GetString(key), 10, 64)
			return n
		default:
			return v.GetInt64(key)
		}
	}
	return def
}
