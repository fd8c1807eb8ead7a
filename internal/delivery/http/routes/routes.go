package routes

import (
	"log"

	"thinkabout/internal/config"
	"thinkabout/internal/delivery/http/handler"
	"thinkabout/internal/delivery/http/middleware"
	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/jwt"
	"thinkabout/internal/usecase"
	ucauth "thinkabout/internal/usecase/auth"
	useruc "thinkabout/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

// Deps is everything the route tree needs. Attempts may be nil to disable
// login throttling; HashCost zero means bcrypt.DefaultCost.
type Deps struct {
	Users     user.Repository
	Questions question.Repository
	Answers   question.AnswerRepository
	Tokens    jwt.Service
	Attempts  ucauth.AttemptStore
	Login     config.LoginConfig
	Health    handler.Pinger
	Logger    *log.Logger
	HashCost  int
}

type Registry struct {
	health    *handler.HealthHandler
	auth      *handler.AuthHandler
	users     *handler.UserHandler
	questions *handler.QuestionHandler
	answers   *handler.AnswerHandler

	authMw  *middleware.AuthMiddleware
	ownerMw *middleware.OwnerMiddleware
}

func NewRegistry(deps Deps) *Registry {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	throttle := ucauth.NewThrottle(deps.Attempts, deps.Login.MaxAttempts, deps.Login.AttemptWindow, logger)
	authSvc := ucauth.NewService(deps.Users, throttle)
	if deps.HashCost > 0 {
		authSvc = authSvc.WithHashCost(deps.HashCost)
	}

	authUC := usecase.NewAuthUsecase(authSvc, deps.Users, deps.Tokens)
	questionUC := usecase.NewQuestionUsecase(deps.Questions, deps.Answers)
	answerUC := usecase.NewAnswerUsecase(deps.Questions, deps.Answers)
	userUC := useruc.NewService(deps.Users)

	return &Registry{
		health:    handler.NewHealthHandler(deps.Health, logger),
		auth:      handler.NewAuthHandler(authUC),
		users:     handler.NewUserHandler(userUC),
		questions: handler.NewQuestionHandler(questionUC),
		answers:   handler.NewAnswerHandler(answerUC),
		authMw:    middleware.NewAuthMiddleware(authUC),
		ownerMw:   middleware.NewOwnerMiddleware(questionUC),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	auth := r.authMw.Middleware()
	owner := r.ownerMw.Middleware()

	authGroup := app.Group("/auth")
	r.auth.RegisterRoutes(authGroup)
	r.users.RegisterRoutes(authGroup, auth)

	r.questions.RegisterRoutes(app.Group("/question"), auth, owner)
	r.answers.RegisterRoutes(app.Group("/answer"), auth)
	r.users.RegisterPackageRoutes(app.Group("/package"), auth)
}
