package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDB       = "vendora"
	defaultRedisAddr     = "localhost:6379"
	defaultJWTSecret     = "change-me-in-production"
	defaultAppPort       = "8000"
	defaultAppEnv        = "local"
	defaultBaseURL       = "http://localhost:8000"
	defaultTokenExpiry   = 24 * time.Hour
	defaultRefreshTTL    = 7 * 24 * time.Hour
	defaultEmailTokenTTL = 20 * time.Minute
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads .env once and merges it over process environment variables.
// Safe to call from every getter; only the first call does work.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFrom(".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":  defaultAppPort,
		"APP_ENV":   defaultAppEnv,
		"BASE_URL":  defaultBaseURL,
		"MONGO_URI": defaultMongoURI,
		"MONGO_DB":  defaultMongoDB,

		"JWT_PRIVATE_KEY":               defaultJWTSecret,
		"JWT_REFRESH_TOKEN_PRIVATE_KEY": "",
		"EMAIL_TOKEN_PRIVATE_KEY":       "",

		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
	}
}

// ── App ──────────────────────────────────────────────────────────────────────

func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }
func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }

// BaseURL is the public URL used when building links in outbound emails.
func BaseURL() string {
	_ = Load()
	return strings.TrimRight(get("BASE_URL", defaultBaseURL), "/")
}

// CORSOrigins returns the allowed cross-origin request origins.
// CORS_ORIGINS is a comma-separated list; "*" allows everything.
func CORSOrigins() []string {
	_ = Load()
	raw := get("CORS_ORIGINS", "*")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// SignupVerification reports whether signup should gate login on a verified
// email and send a verification mail. Shipped disabled, matching the
// behaviour the frontend depends on.
func SignupVerification() bool {
	_ = Load()
	v := strings.ToLower(get("SIGNUP_VERIFICATION", "false"))
	return v == "true" || v == "1"
}

// ── Database ─────────────────────────────────────────────────────────────────

func MongoURI() string { _ = Load(); return get("MONGO_URI", defaultMongoURI) }
func MongoDB() string  { _ = Load(); return get("MONGO_DB", defaultMongoDB) }

// ── Tokens ───────────────────────────────────────────────────────────────────

// JWTSecret is the signing key for session tokens. Email-action tokens fall
// back to this key when no dedicated key is configured.
func JWTSecret() string { _ = Load(); return get("JWT_PRIVATE_KEY", defaultJWTSecret) }

// JWTRefreshSecret is the signing key for refresh tokens.
func JWTRefreshSecret() string {
	_ = Load()
	return get("JWT_REFRESH_TOKEN_PRIVATE_KEY", JWTSecret())
}

// EmailTokenSecret signs email-verification and password-reset tokens.
func EmailTokenSecret() string {
	_ = Load()
	return get("EMAIL_TOKEN_PRIVATE_KEY", JWTSecret())
}

// JWTExpiry is the session token lifetime (JWT_EXPIRATION_TIME, e.g. "24h").
func JWTExpiry() time.Duration {
	_ = Load()
	return duration("JWT_EXPIRATION_TIME", defaultTokenExpiry)
}

// JWTRefreshExpiry is the refresh token lifetime.
func JWTRefreshExpiry() time.Duration {
	_ = Load()
	return duration("JWT_REFRESH_TOKEN_EXPIRATION_TIME", defaultRefreshTTL)
}

// EmailTokenExpiry is the lifetime of verification/reset tokens.
func EmailTokenExpiry() time.Duration {
	_ = Load()
	return duration("EMAIL_TOKEN_EXPIRATION_TIME", defaultEmailTokenTTL)
}

// ── Redis ────────────────────────────────────────────────────────────────────

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDisk() string      { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", "uploads") }

// StorageURL is the public prefix under which locally stored files are served.
func StorageURL() string {
	_ = Load()
	return strings.TrimRight(get("STORAGE_URL", BaseURL()+"/uploads"), "/")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Internals ────────────────────────────────────────────────────────────────

func loadFrom(envPath string) error {
	loaded := defaultValues()

	// Process environment first, .env file wins for local overrides.
	for _, kv := range os.Environ() {
		if idx := strings.IndexByte(kv, '='); idx > 0 {
			loaded[kv[:idx]] = kv[idx+1:]
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Get reads any config key by name with an optional fallback.
// Keys from the process environment and .env are available after Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single config key. Tests use it to flip flags without
// touching the process environment.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[key] = value
	mu.Unlock()
}
