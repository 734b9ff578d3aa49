package cache

import "strings"

const (
	GlobalKeyPrefix = "quizspark"
)

// Key spaces used by the services.
const (
	ServiceSession    = "session"
	ServiceExtraction = "extraction"
)

// GenerateCacheKey builds "<prefix>:<service>:<objectType>:<identifier>".
// paramsKey, if any, are joined by "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}
