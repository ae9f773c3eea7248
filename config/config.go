package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	ModelPath           string  // ONNX-файл с весами
	NamesPath           string  // YAML с метками классов модели
	WhitelistPath       string  // YAML белого списка, пусто — встроенный
	ConfidenceThreshold float64 // порог отбора детекций
	ModelConfidence     float64 // порог уверенности самой модели
	IoUThreshold        float64 // порог NMS
	InputSize           int     // сторона входа сети
	DefaultImage        string  // изображение, если путь не передан
	LogLevel            string
	Letterbox           bool // сохранять пропорции при подготовке входа сети
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		ModelPath:           getEnv("MODEL_PATH", "Corn-Disease50Epoch.onnx"),
		NamesPath:           getEnv("NAMES_PATH", "Corn-Disease50Epoch.yaml"),
		WhitelistPath:       os.Getenv("WHITELIST_PATH"),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.5),
		ModelConfidence:     getEnvAsFloat("MODEL_CONFIDENCE", 0.25),
		IoUThreshold:        getEnvAsFloat("IOU_THRESHOLD", 0.7),
		InputSize:           getEnvAsInt("INPUT_SIZE", 640),
		DefaultImage:        getEnv("DEFAULT_IMAGE", "test-1.jpg"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Letterbox:           getEnvAsBool("LETTERBOX", true),
	}

	return cfg, nil
}

// Validate проверяет пороги и размер входа.
// Вызывается после того, как флаги переопределили значения окружения.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return errors.New("MODEL_PATH is required")
	}
	if c.NamesPath == "" {
		return errors.New("NAMES_PATH is required")
	}
	for name, v := range map[string]float64{
		"confidence threshold": c.ConfidenceThreshold,
		"model confidence":     c.ModelConfidence,
		"iou threshold":        c.IoUThreshold,
	} {
		if v < 0 || v > 1 {
			return errors.Errorf("%s must be within [0, 1], got %v", name, v)
		}
	}
	if c.InputSize <= 0 {
		return errors.Errorf("input size must be positive, got %d", c.InputSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
