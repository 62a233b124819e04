package ciutil

import (
	"log/slog"
	"net/url"
	"os"
)

// Environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Backend connection variables, preferred name first.
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTestDatabaseURL = "TASKS_TEST_DATABASE_URL"
	EnvMongoURI        = "MONGODB_URI"
	EnvTestMongoURI    = "TASKS_TEST_MONGODB_URI"
)

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty variable in
// envVars, or defaultValue. Using anything but the first name is logged.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val))
			}
			return val
		}
	}
	return defaultValue
}

// GetTestDatabaseURL returns the PostgreSQL URL for integration tests, or ""
// when none is configured.
func GetTestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvDatabaseURL, EnvTestDatabaseURL}, "", logger)
}

// GetTestMongoURI returns the MongoDB URI for integration tests, or "" when
// none is configured.
func GetTestMongoURI(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvMongoURI, EnvTestMongoURI}, "", logger)
}

// MaskSensitiveValue hides the password of a connection URL. Values that do
// not parse as URLs with credentials are returned unchanged.
func MaskSensitiveValue(value string) string {
	u, err := url.Parse(value)
	if err != nil || u.User == nil {
		return value
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return value
	}
	u.User = url.UserPassword(u.User.Username(), "REDACTED")
	return u.String()
}
