// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"mylang_backend/internal/config"
	"mylang_backend/internal/handlers"
	"mylang_backend/internal/middleware"
	"mylang_backend/internal/repository"
	"mylang_backend/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	// 開発環境では色付きテキスト、それ以外はJSONで出力する
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.Migrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// 生成プロバイダ (Gemini) クライアントの初期化
	generator, err := service.NewGeminiGenerator(context.Background(), &config.Cfg)
	if err != nil {
		slog.Error("Error initializing text generator", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	userRepo := repository.NewGormUserRepository()
	levelRepo := repository.NewGormLevelRepository()
	lessonRepo := repository.NewGormLessonRepository()
	profileRepo := repository.NewGormProfileRepository()
	membershipRepo := repository.NewGormMembershipRepository()
	convRepo := repository.NewGormConversationRepository()
	msgRepo := repository.NewGormMessageRepository()
	progressRepo := repository.NewGormProgressRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, userRepo, mailer, &config.Cfg)
	userService := service.NewUserService(db, userRepo)
	levelService := service.NewLevelService(db, levelRepo)
	lessonService := service.NewLessonService(db, lessonRepo, levelRepo)
	profileService := service.NewProfileService(db, profileRepo, userRepo, levelRepo, membershipRepo)
	membershipService := service.NewMembershipService(db, membershipRepo, userRepo, levelRepo)
	convService := service.NewConversationService(db, userRepo, convRepo, msgRepo)
	progressService := service.NewProgressService(db, progressRepo, lessonRepo)
	chatService := service.NewChatService(db, userRepo, profileRepo, convRepo, msgRepo, generator, config.Cfg.Chat.HistoryLimit)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, logger)
	levelHandler := handlers.NewLevelHandler(levelService, userService, logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, userService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	membershipHandler := handlers.NewMembershipHandler(membershipService, userService, logger)
	convHandler := handlers.NewConversationHandler(convService, logger)
	msgHandler := handlers.NewMessageHandler(convService, logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger)
	chatHandler := handlers.NewChatHandler(chatService, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/users", authHandler.Register) // ユーザー登録 (認証不要)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/levels", levelHandler.GetLevels) // レベル一覧は公開情報
		r.Get("/levels/{level_id}", levelHandler.GetLevel)

		// --- Protected routes (require JWT) ---
		r.Group(func(r chi.Router) {
			if config.Cfg.Auth.Enabled {
				slog.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
			} else {
				// ローカル開発用。X-User-IDヘッダをそのまま信用する
				slog.Warn("Auth is DISABLED. Using development user context middleware")
				r.Use(middleware.DevUserContextMiddleware)
			}

			// User routes
			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.GetUsers)
				r.Get("/me", userHandler.GetMe)
				r.Get("/{user_id}", userHandler.GetUser)
				r.Patch("/{user_id}", userHandler.PatchUser)
				r.Delete("/{user_id}", userHandler.DeleteUser)
			})

			// Level routes (書き込みはスタッフ専用)
			r.Route("/levels", func(r chi.Router) {
				r.Post("/", levelHandler.PostLevel)
				r.Put("/{level_id}", levelHandler.PutLevel)
				r.Patch("/{level_id}", levelHandler.PatchLevel)
				r.Delete("/{level_id}", levelHandler.DeleteLevel)
			})

			// Lesson routes (書き込みはスタッフ専用)
			r.Route("/lessons", func(r chi.Router) {
				r.Post("/", lessonHandler.PostLesson)
				r.Get("/", lessonHandler.GetLessons)
				r.Get("/{lesson_id}", lessonHandler.GetLesson)
				r.Put("/{lesson_id}", lessonHandler.PutLesson)
				r.Patch("/{lesson_id}", lessonHandler.PatchLesson)
				r.Delete("/{lesson_id}", lessonHandler.DeleteLesson)
			})

			// Profile routes
			r.Route("/profiles", func(r chi.Router) {
				r.Post("/", profileHandler.PostProfile)
				r.Get("/", profileHandler.GetProfiles)
				r.Get("/me", profileHandler.GetMyProfile)
				r.Get("/{profile_id}", profileHandler.GetProfile)
				r.Put("/{profile_id}", profileHandler.PutProfile)
				r.Patch("/{profile_id}", profileHandler.PatchProfile)
				r.Delete("/{profile_id}", profileHandler.DeleteProfile)
			})

			// Membership routes
			r.Route("/memberships", func(r chi.Router) {
				r.Post("/", membershipHandler.PostMembership)
				r.Get("/", membershipHandler.GetMemberships)
				r.Get("/{membership_id}", membershipHandler.GetMembership)
				r.Delete("/{membership_id}", membershipHandler.DeleteMembership)
			})

			// Conversation routes
			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", convHandler.PostConversation)
				r.Get("/", convHandler.GetConversations)
				r.Get("/{conversation_id}", convHandler.GetConversation)
				r.Patch("/{conversation_id}", convHandler.PatchConversation)
				r.Delete("/{conversation_id}", convHandler.DeleteConversation)
				r.Get("/{conversation_id}/messages", msgHandler.GetMessages)
			})

			// Message routes
			r.Route("/messages", func(r chi.Router) {
				r.Post("/", msgHandler.PostMessage)
				r.Get("/", msgHandler.GetMessageList)
				r.Get("/{message_id}", msgHandler.GetMessage)
				r.Delete("/{message_id}", msgHandler.DeleteMessage)
			})

			// Progress routes
			r.Route("/progress", func(r chi.Router) {
				r.Post("/", progressHandler.PostProgress)
				r.Get("/", progressHandler.GetProgressList)
				r.Get("/{progress_id}", progressHandler.GetProgress)
				r.Patch("/{progress_id}", progressHandler.PatchProgress)
				r.Delete("/{progress_id}", progressHandler.DeleteProgress)
			})

			// Chat route
			r.Post("/chat", chatHandler.PostChat)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		// DB接続チェック
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // 生成プロバイダ呼び出しがあるため長めに取る
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
