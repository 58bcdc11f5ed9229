package datasource

import (
	"fmt"
	"time"
)

func getString(config map[string]interface{}, key, defaultValue string) string {
	if v, ok := config[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

func getInt64(config map[string]interface{}, key string, defaultValue int64) int64 {
	switch v := config[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return defaultValue
	}
}

func getDuration(config map[string]interface{}, key string, defaultValue time.Duration) (time.Duration, error) {
	switch v := config[key].(type) {
	case nil:
		return defaultValue, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("%w: %s is %T", ErrInvalidConfig, key, v)
	}
}
