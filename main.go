package main

import (
	"context"
	"log"

	"eduone-core/cache"
	"eduone-core/clients"
	"eduone-core/config"
	"eduone-core/handlers"
	"eduone-core/helper"
	"eduone-core/middleware"
	"eduone-core/repositories"
	"eduone-core/search"
	"eduone-core/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newHTTPHelper() helper.HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		log.Fatalf("register validator translations: %v", err)
	}

	return helper.HTTPHelper{Validate: validate, Translator: translator}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}
	cfg := config.Load()

	logger, err := newLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	counters := cache.NewCounterCache(cfg.RedisAddr, cfg.RedisPassword)
	if err := counters.Ping(context.Background()); err != nil {
		logger.Warn("redis unreachable, counters degrade to zero", zap.Error(err))
	}

	searcher, err := search.NewClient(cfg.ElasticAddr)
	if err != nil {
		logger.Fatal("elasticsearch init failed", zap.Error(err))
	}

	notifier := clients.NewNotifierClient(cfg.NotifierURL, cfg.ServiceToken)
	mailer := clients.NewMailerClient(cfg.MailerURL, cfg.ServiceToken)

	userRepo := repositories.NewUserRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	homeworkRepo := repositories.NewHomeworkRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	fileRepo := repositories.NewFileRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	outboxRepo := repositories.NewOutboxRepository(db)
	preRegRepo := repositories.NewPreRegistrationRepository(db)

	txRunner := services.GormTxRunner(db)
	guard := services.NewOwnershipGuard(courseRepo, lessonRepo, homeworkRepo, contentRepo)
	evaluator := services.NewAchievementEvaluator(achievementRepo, outboxRepo, logger)

	authService := services.NewAuthService(txRunner, userRepo, preRegRepo, outboxRepo, cfg, logger)
	userService := services.NewUserService(txRunner, userRepo, followRepo, outboxRepo, counters, logger)
	courseService := services.NewCourseService(txRunner, courseRepo, categoryRepo, tagRepo, userRepo, followRepo, outboxRepo, guard, logger)
	lessonService := services.NewLessonService(txRunner, lessonRepo, courseRepo, tagRepo, userRepo, followRepo, outboxRepo, guard, logger)
	homeworkService := services.NewHomeworkService(homeworkRepo, lessonRepo, guard)
	contentService := services.NewContentService(contentRepo, lessonRepo, guard)
	fileService := services.NewFileService(fileRepo, userRepo, courseRepo, lessonRepo, homeworkRepo, contentRepo, achievementRepo, evaluator, logger)
	achievementService := services.NewAchievementService(txRunner, achievementRepo, userRepo, outboxRepo, logger)
	tagService := services.NewTagService(tagRepo, outboxRepo, logger)
	categoryService := services.NewCategoryService(txRunner, categoryRepo, outboxRepo, logger)
	followService := services.NewFollowService(followRepo, userRepo, outboxRepo, counters, evaluator, logger)
	subscriptionService := services.NewSubscriptionService(txRunner, subscriptionRepo, courseRepo, userRepo, outboxRepo, evaluator, logger)
	internalService := services.NewInternalService(
		userRepo, courseRepo, lessonRepo, homeworkRepo, achievementRepo, followRepo, evaluator)

	httpHelper := newHTTPHelper()
	authHandler := handlers.AuthHandler{Helper: httpHelper, AuthService: authService}
	userHandler := handlers.UserHandler{Helper: httpHelper, UserService: userService}
	courseHandler := handlers.CourseHandler{Helper: httpHelper, CourseService: courseService}
	lessonHandler := handlers.LessonHandler{Helper: httpHelper, LessonService: lessonService}
	homeworkHandler := handlers.HomeworkHandler{Helper: httpHelper, HomeworkService: homeworkService}
	contentHandler := handlers.ContentHandler{Helper: httpHelper, ContentService: contentService}
	fileHandler := handlers.FileHandler{Helper: httpHelper, FileService: fileService}
	achievementHandler := handlers.AchievementHandler{Helper: httpHelper, AchievementService: achievementService}
	tagHandler := handlers.TagHandler{Helper: httpHelper, TagService: tagService}
	categoryHandler := handlers.CategoryHandler{Helper: httpHelper, CategoryService: categoryService}
	followHandler := handlers.FollowHandler{Helper: httpHelper, FollowService: followService}
	internalHandler := handlers.InternalHandler{
		Helper:              httpHelper,
		InternalService:     internalService,
		SubscriptionService: subscriptionService,
	}

	worker := services.NewOutboxWorker(outboxRepo, searcher, notifier, mailer,
		cfg.OutboxInterval, cfg.OutboxMaxAttempts, logger)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", authHandler.Verify)
			auth.POST("/pre-register", authHandler.PreRegister)
		}

		public := v1.Group("")
		{
			public.GET("/courses", courseHandler.List)
			public.GET("/categories", categoryHandler.List)
			public.GET("/categories/popular", categoryHandler.Popular)
			public.GET("/categories/:id", categoryHandler.Get)
			public.GET("/categories/:id/courses", courseHandler.ListByCategory)
			public.GET("/tags", tagHandler.List)
			public.GET("/tags/:id", tagHandler.Get)
			public.GET("/achievements", achievementHandler.List)
			public.GET("/achievements/:id", achievementHandler.Get)
		}

		protected := v1.Group("", middleware.JWTAuth(cfg.JWTSecret))
		{
			protected.GET("/users", userHandler.List)
			protected.GET("/users/popular", userHandler.Popular)
			protected.GET("/users/me", userHandler.Me)
			protected.GET("/users/me/subscriptions", courseHandler.ListSubscribed)
			protected.GET("/users/me/deleted-courses", courseHandler.ListDeleted)
			protected.GET("/users/:id", userHandler.Get)
			protected.PATCH("/users/:id", userHandler.Update)
			protected.DELETE("/users/:id", userHandler.Deactivate)
			protected.GET("/users/:id/courses", courseHandler.ListByAuthor)
			protected.GET("/users/:id/followers", followHandler.Followers)
			protected.POST("/follow", followHandler.Toggle)

			protected.POST("/courses", courseHandler.Create)
			protected.GET("/courses/:id", courseHandler.Get)
			protected.PATCH("/courses/:id", courseHandler.Update)
			protected.DELETE("/courses/:id", courseHandler.Delete)
			protected.POST("/courses/:id/restore", courseHandler.Restore)
			protected.POST("/courses/:id/hide", courseHandler.Hide)
			protected.POST("/courses/:id/show", courseHandler.Show)
			protected.POST("/courses/category", courseHandler.AssignCategory)
			protected.POST("/courses/:id/tags", courseHandler.BindTag)
			protected.DELETE("/courses/:id/tags/:tagId", courseHandler.UnbindTag)
			protected.GET("/courses/:id/lessons", lessonHandler.ListByCourse)

			protected.POST("/lessons", lessonHandler.Create)
			protected.GET("/lessons/:id", lessonHandler.Get)
			protected.PATCH("/lessons/:id", lessonHandler.Update)
			protected.DELETE("/lessons/:id", lessonHandler.Delete)
			protected.GET("/lessons/:id/course", lessonHandler.Course)
			protected.POST("/lessons/:id/tags", lessonHandler.BindTag)
			protected.DELETE("/lessons/:id/tags/:tagId", lessonHandler.UnbindTag)
			protected.GET("/lessons/:id/homework", homeworkHandler.ListByLesson)
			protected.GET("/lessons/:id/contents", contentHandler.ListByLesson)

			protected.POST("/homework", homeworkHandler.Create)
			protected.GET("/homework/:id", homeworkHandler.Get)
			protected.GET("/homework/:id/lesson", homeworkHandler.Lesson)
			protected.PATCH("/homework/:id", homeworkHandler.Update)
			protected.DELETE("/homework/:id", homeworkHandler.Delete)

			protected.POST("/contents", contentHandler.Create)
			protected.GET("/contents/:id", contentHandler.Get)
			protected.DELETE("/contents/:id", contentHandler.Delete)

			protected.POST("/files", fileHandler.Create)
			protected.GET("/files", fileHandler.ListByOwner)
			protected.GET("/files/:id", fileHandler.Get)
			protected.DELETE("/files/:id", fileHandler.Delete)

			protected.POST("/tags", tagHandler.Create)
		}

		admin := v1.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireSuperuser())
		{
			admin.POST("/achievements", achievementHandler.Create)
			admin.PATCH("/achievements/:id", achievementHandler.Update)
			admin.DELETE("/achievements/:id", achievementHandler.Delete)
			admin.POST("/achievements/:id/users/:userId", achievementHandler.Toggle)

			admin.POST("/categories", categoryHandler.Create)
			admin.PATCH("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.PATCH("/tags/:id", tagHandler.Update)
			admin.DELETE("/tags/:id", tagHandler.Delete)
			admin.POST("/users/:id/promote", userHandler.PromoteAuthor)
			admin.GET("/pre-registrations", authHandler.ListPreRegistrations)
		}

		internal := v1.Group("/internal", middleware.ServiceAuth(cfg.ServiceToken))
		{
			internal.GET("/users/:id/exists", internalHandler.UserExists)
			internal.GET("/users/:id/superuser", internalHandler.IsSuperuser)
			internal.GET("/users/:id/followers", internalHandler.Followers)
			internal.GET("/users/:id/following", internalHandler.Following)
			internal.GET("/courses/:id/exists", internalHandler.CourseExists)
			internal.GET("/lessons/:id/exists", internalHandler.LessonExists)
			internal.GET("/homework/:id/exists", internalHandler.HomeworkExists)
			internal.GET("/achievements/:id/exists", internalHandler.AchievementExists)
			internal.POST("/subscriptions", internalHandler.Subscribe)
			internal.DELETE("/subscriptions", internalHandler.Unsubscribe)
			internal.POST("/graduations", internalHandler.Graduate)
			internal.POST("/comments/report", internalHandler.ReportComments)
		}
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
