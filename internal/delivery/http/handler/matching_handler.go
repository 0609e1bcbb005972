package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/usecase/matching"
	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewMatchingHandler(matchingUseCase *matching.MatchingUseCase) *MatchingHandler {
	return &MatchingHandler{
		matchingUseCase: matchingUseCase,
	}
}

// CandidatesResponse is a ranked page of candidates
type CandidatesResponse struct {
	Candidates    []*matching.CandidateResponse `json:"candidates"`
	NextPageToken string                        `json:"next_page_token,omitempty"`
}

// GetCandidates handles GET /feed/candidates
// @Summary Get ranked candidates
// @Description Get the next page of candidates ranked by compatibility
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param page_token query string false "Pagination cursor"
// @Success 200 {object} CandidatesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/candidates [get]
func (h *MatchingHandler) GetCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	candidates, nextToken, err := h.matchingUseCase.FetchCandidates(c.Request.Context(), userID, c.Query("page_token"))
	if err != nil {
		if errors.Is(err, domain.ErrFetchInFlight) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "a candidate fetch is already in progress",
			})
			return
		}
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to fetch candidates",
		})
		return
	}

	c.JSON(http.StatusOK, CandidatesResponse{
		Candidates:    candidates,
		NextPageToken: nextToken,
	})
}

// CreateSwipe handles POST /interactions
// @Summary Record a swipe
// @Description Record a like/dislike/superlike and report a mutual match
// @Tags interactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body matching.SwipeRequest true "Swipe data"
// @Success 201 {object} matching.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /interactions [post]
func (h *MatchingHandler) CreateSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	var req matching.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	response, err := h.matchingUseCase.Swipe(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCannotInteractSelf):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "cannot swipe yourself",
			})
		case errors.Is(err, domain.ErrInvalidInteraction):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid interaction kind",
			})
		case errors.Is(err, domain.ErrInteractionExists):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "already swiped this user",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to record swipe",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetMatches handles GET /matches
// @Summary Get my matches
// @Description Get the caller's matches, newest first
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.Match
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchingHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	matches, err := h.matchingUseCase.GetMatches(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}
