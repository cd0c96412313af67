package server

import (
	"CharityFund_Backend/internal"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"net/http"
	"os"
)

// Env хранит значения окружения, прочитанные один раз при старте процесса.
// Секреты не попадают в yaml-конфигурацию и существуют только здесь.
type Env struct {
	DbDriverName       string
	DbConnectionString string
	ServerAddress      string
	JWTAccessSecret    string
	JWTRefreshSecret   string
	AppEnv             string
}

func LoadEnv(envPath string) (*Env, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf(".env не найден по пути %s: %w", envPath, err)
		}
	}

	env := &Env{
		DbDriverName:       os.Getenv("DATABASE_DRIVER"),
		DbConnectionString: os.Getenv("DATABASE_CONNECTION_URL"),
		ServerAddress:      os.Getenv("SERVER_ADDRESS"),
		JWTAccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
		AppEnv:             os.Getenv("APP_ENV"),
	}

	if env.JWTAccessSecret == "" || env.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET и JWT_REFRESH_SECRET обязательны")
	}
	if env.DbConnectionString == "" {
		return nil, fmt.Errorf("DATABASE_CONNECTION_URL обязателен")
	}

	return env, nil
}

// IsProduction управляет флагом Secure у cookie.
func (env *Env) IsProduction() bool {
	return env.AppEnv == "production"
}

func SetupDatabase(env *Env, maxOpenConnections int) (*internal.Database, error) {
	database, err := internal.NewDatabaseConnection(env.DbDriverName, env.DbConnectionString, maxOpenConnections)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения: %w", err)
	}
	return database, nil
}

func SetupServer(env *Env) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    env.ServerAddress,
		Handler: router,
	}

	return server, router
}
