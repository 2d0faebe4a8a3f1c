package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	API_BASE_URL                string
	API_REQUEST_TIMEOUT_SECONDS int
	CACHE_STORE_TYPE            string
	CACHE_URL                   string
	REDIS_URL                   string
	CACHE_PASSWORD              string
	CACHE_DB                    int
	CACHE_DSN                   string
	CACHE_NAMESPACE             string
	CREDENTIALS_FILE            string
	JWT_SECRET                  []byte
	APIKEY_SECRET               []byte
	API_PORT                    int
	ALLOWED_CORS_HOSTS          []string
	LOG_LEVEL                   string
	OIDC_ISSUER_URL             string
	OIDC_CLIENT_ID              string
	OIDC_CLIENT_SECRET          string
	OIDC_REDIRECT_URL           string
	DB_SQLITE_PATH              string
	DB_POSTGRESQL_WRITE_DSN     string
	DB_POSTGRESQL_READ1_DSN     string
	GUEST_DAILY_JOB_LIMIT       int
	SEED_ADMIN_EMAIL            string
	SEED_ADMIN_PASSWORD         string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}
		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(envValue)
		case []byte:
			v.Field(i).SetBytes([]byte(envValue))
		case []string:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		case int:
			n, err := strconv.Atoi(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV %s: %v\n", envKey, err)
				continue
			}
			v.Field(i).SetInt(int64(n))
		case bool:
			b, err := strconv.ParseBool(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV %s: %v\n", envKey, err)
				continue
			}
			v.Field(i).SetBool(b)
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
