package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/nkripta/nkripta/internal/cache"
	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/mockdata"
	"github.com/nkripta/nkripta/internal/types"
)

// BaseServiceTestSuite wires the in-memory stores, the fake gateway and the
// mock generator that service tests build their ServiceParams from.
type BaseServiceTestSuite struct {
	suite.Suite

	logger     *logger.Logger
	config     *config.Configuration
	cache      cache.Cache
	profiles   *InMemoryProfileStore
	orgs       *InMemoryOrganizationStore
	gateway    *FakeGateway
	stateStore *mockdata.MemoryStateStore
	mockGen    *mockdata.Generator
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.logger = logger.GetLogger()
	s.config = config.GetDefaultConfig()
	s.cache = cache.NewInMemoryCache()
	s.profiles = NewInMemoryProfileStore()
	s.orgs = NewInMemoryOrganizationStore()
	s.gateway = NewFakeGateway()
	s.stateStore = mockdata.NewMemoryStateStore()
	s.mockGen = mockdata.NewGenerator(s.stateStore)
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.stateStore.Reset()
	s.cache.Flush(context.Background())
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return context.Background()
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger               { return s.logger }
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration        { return s.config }
func (s *BaseServiceTestSuite) GetCache() cache.Cache                   { return s.cache }
func (s *BaseServiceTestSuite) GetProfileStore() *InMemoryProfileStore  { return s.profiles }
func (s *BaseServiceTestSuite) GetOrgStore() *InMemoryOrganizationStore { return s.orgs }
func (s *BaseServiceTestSuite) GetGateway() *FakeGateway                { return s.gateway }
func (s *BaseServiceTestSuite) GetStateStore() *mockdata.MemoryStateStore {
	return s.stateStore
}
func (s *BaseServiceTestSuite) GetMockGen() *mockdata.Generator { return s.mockGen }

// ContextWithCaller builds a request context carrying the given caller
// identity, the way the authentication middleware would.
func ContextWithCaller(profileID, organizationID, email string, roles []types.Role) context.Context {
	return types.SetCallerContext(context.Background(), profileID, organizationID, email, roles)
}
