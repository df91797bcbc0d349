package service

import (
	"github.com/nkripta/nkripta/internal/cache"
	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/domain/organization"
	"github.com/nkripta/nkripta/internal/domain/profile"
	"github.com/nkripta/nkripta/internal/domain/subscription"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/mockdata"
)

// ServiceParams is the common dependency bag embedded by every service.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	ProfileRepo profile.Repository
	OrgRepo     organization.Repository

	Gateway subscription.Gateway
	MockGen *mockdata.Generator
}
