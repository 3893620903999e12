package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
}

func New(cfg *config.Config, logger *logrus.Logger, svc *services.Services, db Pinger, products int) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(db, products, logger),
		Recommendation: NewRecommendationHandler(svc.Recommender, &cfg.Recommendation, logger),
	}
}
