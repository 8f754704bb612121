package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PawBook/post-service/internal/dto"
	"github.com/PawBook/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	record, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errRecordNotFound.Error()))
			return
		}

		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, post)
}

// postsExplore serves the feed. A search term switches it from live
// browsing to the search index, whose documents are frozen copies from
// creation time.
func (h *Handler) postsExplore(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	if search := c.Query("search"); search != "" {
		docs, err := h.services.Post.Search(c.Request.Context(), search, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, "error in service"))
			return
		}

		c.JSON(http.StatusOK, docs)
		return
	}

	posts, err := h.services.Post.Browse(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetMy(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	page, limit := pagination(c)

	posts, err := h.services.Post.FindUserPosts(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetByUser(c *gin.Context) {
	userIDString := strings.TrimSpace(c.Param("userID"))
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	page, limit := pagination(c)

	posts, err := h.services.Post.FindUserPosts(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetByPet(c *gin.Context) {
	petIDString := strings.TrimSpace(c.Param("petID"))
	petID, err := strconv.Atoi(petIDString)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPetID.Error()))
		return
	}

	page, limit := pagination(c)

	posts, err := h.services.Post.FindPetPosts(c.Request.Context(), int64(petID), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updated, err := h.services.Post.Update(c.Request.Context(), postID, user.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errRecordNotFound.Error()))
		case errors.Is(err, service.ErrNotPostOwner):
			c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) postsCommentsCount(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	total, err := h.services.Post.CountComments(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.TotalCommentsResponse{TotalComments: total})
}

func (h *Handler) postsReport(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	updated, err := h.services.Post.Report(c.Request.Context(), postID, c.Param("type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errRecordNotFound.Error()))
		case errors.Is(err, service.ErrUnknownReportType):
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) postsUpdateStatus(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updated, err := h.services.Post.UpdateStatus(
		c.Request.Context(),
		postID,
		fmt.Sprintf("%v", input.ImageStatus),
		fmt.Sprintf("%v", input.CaptionStatus),
	)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errRecordNotFound.Error()))
			return
		}

		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, updated)
}

func postIDParam(c *gin.Context) (int64, error) {
	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.Atoi(postIDString)
	if err != nil {
		return 0, err
	}

	return int64(postID), nil
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	return page, limit
}
