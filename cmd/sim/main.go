package main

import (
	"os"

	"github.com/jcastano/fabrica-sim/internal/application/simulation"
	"github.com/jcastano/fabrica-sim/internal/infrastructure/scenario"
	"github.com/jcastano/fabrica-sim/internal/interfaces/cli"
	"github.com/jcastano/fabrica-sim/pkg/config"
	"github.com/jcastano/fabrica-sim/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("escenario", cfg.Sim.ScenarioPath).
		Msg("iniciando simulador")

	simCfg, err := scenario.Load(cfg.Sim.ScenarioPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar escenario")
	}
	// SIM_SEED permite reproducir una corrida sin editar el escenario
	if cfg.Sim.Seed != 0 {
		simCfg.Seed = cfg.Sim.Seed
	}

	engine, err := simulation.NewEngine(simCfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar simulación")
	}

	console := cli.New(engine, os.Stdin, os.Stdout)
	if err := console.Run(); err != nil {
		log.Fatal().Err(err).Msg("consola interactiva")
	}

	log.Info().Int("dia_final", engine.CurrentDay()).Msg("simulación terminada")
}
