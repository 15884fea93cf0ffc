package setup

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretha12/MoGrow/internal/config"
	"github.com/aretha12/MoGrow/internal/executor"
	"github.com/aretha12/MoGrow/internal/features"
	"github.com/aretha12/MoGrow/internal/metrics"
	"github.com/aretha12/MoGrow/internal/ml"
	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/rules"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// PipelineConfig locates one subject's artifacts.
type PipelineConfig struct {
	ScalerType string
	ScalerPath string
	ModelType  string
	ModelPath  string
	Accuracy   float64
	RuleSet    string
}

type Config struct {
	LogLevel        string
	LogFormat       string
	TemperatureUnit string
	Child           PipelineConfig
	Maternal        PipelineConfig

	APIPort      string
	BatchWorkers int

	RedisAddr     string
	RedisPassword string
	RequestStream string
	ResultStream  string
	ConsumerGroup string
	ConsumerName  string
}

type Dependencies struct {
	Executor        *executor.Executor
	OverlayExecutor *executor.OverlayExecutor
	Resolver        *executor.RuleSetResolver
	Registry        *rules.Registry
	Metrics         *metrics.Metrics
	Logger          *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		TemperatureUnit: getEnv("MATERNAL_TEMPERATURE_UNIT", string(features.Celsius)),
		Child: PipelineConfig{
			ScalerType: getEnv("CHILD_SCALER_TYPE", "standard"),
			ScalerPath: getEnv("CHILD_SCALER_PATH", "artifacts/child_scaler.json"),
			ModelType:  getEnv("CHILD_MODEL_TYPE", "random_forest"),
			ModelPath:  getEnv("CHILD_MODEL_PATH", "artifacts/child_random_forest.json"),
			Accuracy:   getEnvFloat("CHILD_MODEL_ACCURACY", 0.865),
			RuleSet:    getEnv("CHILD_RULE_SET", rules.ChildOverrideNormal),
		},
		Maternal: PipelineConfig{
			ScalerType: getEnv("MATERNAL_SCALER_TYPE", "standard"),
			ScalerPath: getEnv("MATERNAL_SCALER_PATH", "artifacts/maternal_scaler.json"),
			ModelType:  getEnv("MATERNAL_MODEL_TYPE", "random_forest"),
			ModelPath:  getEnv("MATERNAL_MODEL_PATH", "artifacts/maternal_random_forest.json"),
			Accuracy:   getEnvFloat("MATERNAL_MODEL_ACCURACY", 0.8473),
			RuleSet:    getEnv("MATERNAL_RULE_SET", rules.MaternalPassthrough),
		},
		APIPort:       getEnv("MOGROW_API_PORT", "18081"),
		BatchWorkers:  getEnvInt("BATCH_WORKERS", 4),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RequestStream: getEnv("REQUEST_STREAM", "decision-requests"),
		ResultStream:  getEnv("RESULT_STREAM", "decision-results"),
		ConsumerGroup: getEnv("CONSUMER_GROUP", "decision-group"),
		ConsumerName:  getEnv("HOSTNAME", "mogrow"),
	}
}

// Wire loads every artifact and rule set once. Any missing artifact is
// fatal: the service never starts without both models.
func Wire(cfg *Config, reg prometheus.Registerer, logger *zerolog.Logger) (*Dependencies, error) {
	unit, err := features.ParseTemperatureUnit(cfg.TemperatureUnit)
	if err != nil {
		return nil, err
	}
	normalizer := features.NewNormalizer(unit)

	// Rule sets: built-ins first, YAML overrides by name
	registry, err := rules.NewRegistry(rules.Builtin()...)
	if err != nil {
		return nil, fmt.Errorf("failed to register built-in rule sets: %w", err)
	}

	rulesConfig, err := config.LoadRuleSetsConfig()
	switch {
	case err == nil:
		sets, err := rules.NewLoader(logger).BuildFromConfig(rulesConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to build rule sets from config: %w", err)
		}
		for _, set := range sets {
			if err := registry.Register(set); err != nil {
				return nil, fmt.Errorf("failed to register rule set %s: %w", set.Name, err)
			}
		}
	case config.IsNotExist(err) && os.Getenv("RULES_CONFIG_PATH") == "":
		logger.Warn().Msg("No rules config found, using built-in rule sets")
	default:
		return nil, fmt.Errorf("failed to load rules config: %w", err)
	}

	defaults := map[models.Subject]string{
		models.SubjectChild:    cfg.Child.RuleSet,
		models.SubjectMaternal: cfg.Maternal.RuleSet,
	}
	for subject, name := range defaults {
		set, err := registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("default %s rule set: %w", subject, err)
		}
		if set.Subject != subject {
			return nil, fmt.Errorf("default %s rule set: %w: %q", subject, models.ErrRuleSetMismatch, name)
		}
	}
	resolver := executor.NewRuleSetResolver(registry, defaults)

	// Pipelines
	child, err := loadPipeline(models.SubjectChild, cfg.Child, normalizer)
	if err != nil {
		return nil, err
	}
	maternal, err := loadPipeline(models.SubjectMaternal, cfg.Maternal, normalizer)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("childRuleSet", cfg.Child.RuleSet).
		Str("maternalRuleSet", cfg.Maternal.RuleSet).
		Str("temperatureUnit", string(unit)).
		Msg("pipelines loaded")

	m := metrics.New(reg)

	// Executors
	exec := executor.NewExecutor([]executor.Pipeline{child, maternal}, resolver, m, logger)
	overlayExec := executor.NewOverlayExecutor(normalizer, resolver, logger)

	return &Dependencies{
		Executor:        exec,
		OverlayExecutor: overlayExec,
		Resolver:        resolver,
		Registry:        registry,
		Metrics:         m,
		Logger:          logger,
	}, nil
}

func loadPipeline(subject models.Subject, cfg PipelineConfig, normalizer *features.Normalizer) (executor.Pipeline, error) {
	scaler, err := ml.LoadScaler(cfg.ScalerType, cfg.ScalerPath)
	if err != nil {
		return executor.Pipeline{}, fmt.Errorf("failed to load %s scaler: %w", subject, err)
	}
	classifier, err := ml.LoadClassifier(cfg.ModelType, cfg.ModelPath)
	if err != nil {
		return executor.Pipeline{}, fmt.Errorf("failed to load %s model: %w", subject, err)
	}
	return executor.Pipeline{
		Subject:    subject,
		Normalizer: normalizer,
		Scaler:     scaler,
		Classifier: classifier,
		Accuracy:   cfg.Accuracy,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
