package main

import (
	"CharityFund_Backend/config"
	"CharityFund_Backend/config/server"
	"CharityFund_Backend/internal/handler"
	"CharityFund_Backend/internal/repository"
	"CharityFund_Backend/internal/security"
	"CharityFund_Backend/internal/service"
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь до yaml конфигурации")
	envPath := flag.String("env", ".env", "путь до .env файла")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("не удалось загрузить конфигурацию: %v", err)
	}

	env, err := server.LoadEnv(*envPath)
	if err != nil {
		log.Fatalf("не удалось загрузить окружение: %v", err)
	}

	database, err := server.SetupDatabase(env, cfg.Database.MaxOpenConnections)
	if err != nil {
		log.Fatalf("не удалось подключиться к БД: %v", err)
	}
	defer database.Close()

	httpServer, router := server.SetupServer(env)

	jwtService, err := security.NewJWTService(
		env.JWTAccessSecret,
		env.JWTRefreshSecret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)
	if err != nil {
		log.Fatalf("не удалось создать JWT сервис: %v", err)
	}

	userRepository := repository.NewUserRepository(database)
	refreshTokenRepository := repository.NewRefreshTokenRepository(database)
	consultationRepository := repository.NewConsultationRepository(database)

	authenticationService := service.NewAuthenticationService(userRepository, refreshTokenRepository, jwtService, cfg)
	consultationService := service.NewConsultationService(consultationRepository)

	authenticationHandler := handler.NewAuthenticationHandler(authenticationService, env.IsProduction())
	consultationHandler := handler.NewConsultationHandler(consultationService)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authenticationHandler.Register)
			r.Post("/login", authenticationHandler.Login)
			r.Post("/refresh", authenticationHandler.Refresh)
			r.Post("/logout", authenticationHandler.Logout)
			r.Group(func(r chi.Router) {
				r.Use(security.JWTMiddleware(jwtService))
				r.Get("/me", authenticationHandler.Me)
			})
		})
		r.Route("/consultations", func(r chi.Router) {
			r.Post("/", consultationHandler.Submit)
			r.Group(func(r chi.Router) {
				r.Use(security.JWTMiddleware(jwtService))
				r.Use(handler.RequireAdmin(userRepository))
				r.Get("/", consultationHandler.List)
				r.Get("/{uuid}", consultationHandler.Get)
				r.Patch("/{uuid}/status", consultationHandler.UpdateStatus)
			})
		})
	})

	runServer(ctx, httpServer)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
