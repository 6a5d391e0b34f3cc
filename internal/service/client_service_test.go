package service

import (
	"testing"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"
	"ai_tutor_crm_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClientService() *ClientService {
	return NewClientService(repository.NoopStore[*model.Client]{}, zap.NewNop())
}

func TestClientServiceSeeds(t *testing.T) {
	s := newClientService()

	clients := s.GetAllClients()
	require.Len(t, clients, 2)
	assert.Equal(t, "John Doe", clients[0].FullName())
	assert.Equal(t, "Jane Smith", clients[1].FullName())
	assert.Equal(t, 1000.0, clients[0].Budget)
}

func TestAddClientAssignsNextID(t *testing.T) {
	s := newClientService()

	c := model.NewClient(0, "Bob", "Stone", "bob@corp.com", "555-123-4567", "Corp", "PM")
	require.NoError(t, s.AddClient(c))
	assert.Equal(t, 3, c.ID)

	got := s.GetClientByID(3)
	require.NotNil(t, got)
	assert.Equal(t, "Bob Stone", got.FullName())
}

func TestAddClientRejectsInvalidEmail(t *testing.T) {
	s := newClientService()

	c := model.NewClient(0, "Bob", "Stone", "not-an-email", "555-123-4567", "", "")
	err := s.AddClient(c)
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))

	// 校验失败时不入库
	assert.Len(t, s.GetAllClients(), 2)
}

func TestAddClientRejectsInvalidPhone(t *testing.T) {
	s := newClientService()

	c := model.NewClient(0, "Bob", "Stone", "bob@corp.com", "12", "", "")
	err := s.AddClient(c)
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
}

func TestRemoveClient(t *testing.T) {
	s := newClientService()

	assert.True(t, s.RemoveClient(1))
	assert.Nil(t, s.GetClientByID(1))
	assert.False(t, s.RemoveClient(1))
	assert.False(t, s.RemoveClient(999))
}

func TestGetAllClientsReturnsSnapshot(t *testing.T) {
	s := newClientService()

	snapshot := s.GetAllClients()
	snapshot[0] = nil

	assert.NotNil(t, s.GetAllClients()[0])
}

func TestUpdateClientDetails(t *testing.T) {
	s := newClientService()

	found, err := s.UpdateClientDetails(1, "Johnny", "Doe", "johnny@example.com", "555-123-9999", "TechCorp", "CEO")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Johnny Doe", s.GetClientByID(1).FullName())

	found, err = s.UpdateClientDetails(999, "A", "B", "a@b.com", "555-123-4567", "", "")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.UpdateClientDetails(1, "A", "B", "broken", "555-123-4567", "", "")
	assert.True(t, util.IsValidationError(err))
}

func TestSearchClients(t *testing.T) {
	s := newClientService()

	assert.Len(t, s.SearchClientsByName("john"), 1)
	assert.Len(t, s.SearchClientsByName("SMITH"), 1)
	assert.Empty(t, s.SearchClientsByName("nobody"))

	assert.Len(t, s.SearchClientsByCompany("techcorp"), 1)
	assert.Len(t, s.GetClientsInterestedInModel("GPT-4"), 2)
	assert.Len(t, s.GetClientsInterestedInModel("BERT"), 1)
}

func TestUpdateClientProgress(t *testing.T) {
	s := newClientService()

	assert.True(t, s.UpdateClientProgress(1, "Claude", 2))
	assert.Equal(t, 2, s.GetClientProficiencies(1)["Claude"])

	// 越界等级由实体忽略，调用仍算成功
	assert.True(t, s.UpdateClientProgress(1, "Claude", 8))
	assert.Equal(t, 2, s.GetClientProficiencies(1)["Claude"])

	assert.False(t, s.UpdateClientProgress(999, "Claude", 2))
	assert.Empty(t, s.GetClientProficiencies(999))
}

func TestUpdateClientBudget(t *testing.T) {
	s := newClientService()

	assert.True(t, s.UpdateClientBudget(1, 200, true))
	assert.Equal(t, 1200.0, s.GetClientBudget(1))

	assert.True(t, s.UpdateClientBudget(1, 5000, false))
	assert.Equal(t, 0.0, s.GetClientBudget(1))

	assert.False(t, s.UpdateClientBudget(999, 100, true))
	assert.Equal(t, 0.0, s.GetClientBudget(999))
}

func TestUpdateClientSessionInfo(t *testing.T) {
	s := newClientService()

	assert.True(t, s.UpdateClientSessionInfo(1, "2025-04-01"))
	assert.Equal(t, 6, s.GetClientCompletedSessions(1))
	assert.Equal(t, "2025-04-01", s.GetClientByID(1).LastSessionDate)
}

func TestClientAnalytics(t *testing.T) {
	s := newClientService()

	popular := s.GetPopularAIModels()
	assert.Equal(t, 2, popular["GPT-4"])
	assert.Equal(t, 1, popular["DALL-E 3"])

	assert.InDelta(t, 4.0, s.GetAverageClientSessions(), 1e-9)

	top := s.GetTopClients(1)
	require.Len(t, top, 1)
	assert.Equal(t, "John Doe", top[0].FullName())

	// 数量超过集合时返回全部
	assert.Len(t, s.GetTopClients(10), 2)
	assert.Empty(t, s.GetTopClients(-1))
	assert.Empty(t, s.GetTopClients(0))
}
