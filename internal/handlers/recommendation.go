package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/internal/services"
	"github.com/velora/shoprec/pkg/models"
)

type RecommendationHandler struct {
	recommender services.RecommenderInterface
	cfg         *config.RecommendationConfig
	logger      *logrus.Logger
}

func NewRecommendationHandler(
	recommender services.RecommenderInterface,
	cfg *config.RecommendationConfig,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		cfg:         cfg,
		logger:      logger,
	}
}

// Get serves GET /api/v1/recommendations/:userId.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "User ID is required",
			},
		})
		return
	}

	n := h.parseCount(c)
	results := h.recommender.GetRecommendations(c.Request.Context(), userID, n)

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		Recommendations: results,
		Count:           len(results),
		GeneratedAt:     time.Now().UTC(),
	})
}

// GetForProduct serves GET /api/v1/recommendations/:userId/product/:productId.
func (h *RecommendationHandler) GetForProduct(c *gin.Context) {
	userID := c.Param("userId")
	productID := c.Param("productId")
	if userID == "" || productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "User ID and product ID are required",
			},
		})
		return
	}

	n := h.parseCount(c)
	results := h.recommender.GetRecommendationsForProduct(c.Request.Context(), userID, productID, n)

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		Recommendations: results,
		Count:           len(results),
		GeneratedAt:     time.Now().UTC(),
	})
}

func (h *RecommendationHandler) parseCount(c *gin.Context) int {
	n := h.cfg.DefaultCount
	if countStr := c.Query("n"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 && parsed <= h.cfg.MaxCount {
			n = parsed
		}
	}
	return n
}
