package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/dainadb/improplan/docs"
	v1 "github.com/dainadb/improplan/internal/api/handler/v1"
	"github.com/dainadb/improplan/internal/api/middleware"
	"github.com/dainadb/improplan/internal/config"
	"github.com/dainadb/improplan/internal/repository"
	"github.com/dainadb/improplan/internal/repository/dao"
	"github.com/dainadb/improplan/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	eventHandler := s.initEventHandler(db)
	favoriteHandler := s.initFavoriteHandler(db)
	refDataHandler := s.initRefDataHandler(db)
	s.MountHandlers(authHandler, eventHandler, favoriteHandler, refDataHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	refDataRepo := repository.NewRefDataRepository(dao.NewRefDataDAO(db))
	dateRepo := repository.NewEventDateRepository(dao.NewEventDateDAO(db))

	dateSvc := service.NewEventDateService(dateRepo)
	svc := service.NewEventService(eventRepo, refDataRepo, dateSvc)
	handler := v1.NewEventHandler(svc, dateSvc)

	return handler
}

func (s *Server) initFavoriteHandler(db *gorm.DB) *v1.FavoriteHandler {
	favoriteRepo := repository.NewFavoriteRepository(dao.NewFavoriteDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewFavoriteService(favoriteRepo, eventRepo, userRepo)
	handler := v1.NewFavoriteHandler(svc)

	return handler
}

func (s *Server) initRefDataHandler(db *gorm.DB) *v1.RefDataHandler {
	repo := repository.NewRefDataRepository(dao.NewRefDataDAO(db))
	svc := service.NewRefDataService(repo)
	handler := v1.NewRefDataHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, eventHandler *v1.EventHandler, favoriteHandler *v1.FavoriteHandler, refDataHandler *v1.RefDataHandler) {
	const basePath = "/api"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", authHandler.HandleRegister)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/events/:eventID/dates", eventHandler.HandleGetEventDates)
		public.GET("/events/:eventID/dates/upcoming", eventHandler.HandleGetUpcomingEventDates)
		public.GET("/events/filters", eventHandler.HandleSearchEvents)

		public.GET("/favorites/count/:eventID", favoriteHandler.HandleCountFavorites)

		public.GET("/themes", refDataHandler.HandleListThemes)
		public.GET("/provinces", refDataHandler.HandleListProvinces)
		public.GET("/municipalities", refDataHandler.HandleListMunicipalities)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.POST("/auth/logout", authHandler.HandleLogout)
		authed.GET("/auth/me", authHandler.HandleGetMe)

		authed.POST("/events/create", eventHandler.HandleCreateEvent)
		authed.GET("/events/user/:email", eventHandler.HandleListByUserEmail)
		authed.GET("/events/favorites/user/:userID", eventHandler.HandleListFavoritedOfUser)

		authed.POST("/favorites/add", favoriteHandler.HandleAddFavorite)
		authed.DELETE("/favorites/delete/:eventID", favoriteHandler.HandleRemoveFavorite)
		authed.GET("/favorites/my-favorites", favoriteHandler.HandleMyFavorites)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireAdmin())
	{
		admin.PUT("/events/update/:eventID", eventHandler.HandleUpdateEvent)
		admin.PATCH("/events/publish/:eventID", eventHandler.HandlePublishEvent)
		admin.DELETE("/events/softdelete/:eventID", eventHandler.HandleSoftDeleteEvent)
		admin.DELETE("/events/harddelete/:eventID", eventHandler.HandleHardDeleteEvent)

		admin.GET("/events/name/:name", eventHandler.HandleSearchEventsByName)
		admin.GET("/events/intime/:status", eventHandler.HandleListInTimeByStatus)
		admin.GET("/events/discarded", eventHandler.HandleListDiscarded)
		admin.GET("/events/outtime", eventHandler.HandleListOutOfTime)
		admin.GET("/events/count/pending", eventHandler.HandleCountPending)
		admin.GET("/events/count/discarded", eventHandler.HandleCountDiscarded)
		admin.GET("/events/count/outtime", eventHandler.HandleCountOutOfTime)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Improplan API"
	docs.SwaggerInfo.Description = "REST API for discovering and managing local cultural events."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
