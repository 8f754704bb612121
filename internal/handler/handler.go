package handler

import (
	"context"

	"github.com/PawBook/post-service/internal/model"
	"github.com/PawBook/post-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("", h.postsExplore)
			posts.GET("/my", h.authMiddleware, h.postsGetMy)

			post := posts.Group("/:postID")
			{
				post.GET("", h.postsGetByID)
				post.PUT("", h.authMiddleware, h.postsUpdate)
				post.GET("/comments/count", h.postsCommentsCount)
				// report and status carry no auth on purpose: the
				// moderation caller is trusted upstream.
				post.POST("/report/:type", h.postsReport)
				post.PUT("/status", h.postsUpdateStatus)
			}
		}

		users := v1.Group("/users")
		{
			users.GET("/:userID/posts", h.postsGetByUser)
		}

		pets := v1.Group("/pets")
		{
			pets.GET("/:petID/posts", h.postsGetByPet)
		}
	}

	return r
}

func (h *Handler) getUserDataFromClaims(ctx context.Context, claims jwt.MapClaims) (*model.User, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	user, err := h.services.UserCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}
