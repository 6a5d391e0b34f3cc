package repository

import (
	"path/filepath"
	"testing"

	"ai_tutor_crm_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.txt")
	store := NewClientFileStore(path)

	c := model.NewClient(1, "John", "Doe", "john.doe@techcorp.com", "555-123-4567", "TechCorp", "CTO")
	c.AddModelOfInterest("GPT-4")
	c.AddModelOfInterest("DALL-E 3")
	c.AddLearningGoal("Implement AI in business")
	c.SetModelProficiency("GPT-4", 3)
	c.RegistrationDate = "2025-01-15"
	c.SessionsCompleted = 5
	c.LastSessionDate = "2025-03-01"
	c.Budget = 1000

	require.NoError(t, store.Save([]*model.Client{c}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.FullName(), got.FullName())
	assert.Equal(t, c.Email, got.Email)
	assert.Equal(t, c.ModelsOfInterest, got.ModelsOfInterest)
	assert.Equal(t, c.LearningGoals, got.LearningGoals)
	assert.Equal(t, 3, got.ModelProficiency["GPT-4"])
	assert.Equal(t, 5, got.SessionsCompleted)
	assert.Equal(t, 1000.0, got.Budget)
}

func TestClientEncodingIsDeterministic(t *testing.T) {
	c := model.NewClient(1, "John", "Doe", "john@techcorp.com", "555-123-4567", "TechCorp", "CTO")
	c.SetModelProficiency("GPT-4", 3)
	c.SetModelProficiency("Claude", 2)
	c.SetModelProficiency("BERT", 4)

	first, err := encodeClient(c)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		line, err := encodeClient(c)
		require.NoError(t, err)
		assert.Equal(t, first, line)
	}
	assert.Contains(t, first, "BERT:4,Claude:2,GPT-4:3")
}

func TestClientEncodingSanitizesDelimiters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.txt")
	store := NewClientFileStore(path)

	c := model.NewClient(1, "John", "Doe", "john@techcorp.com", "555-123-4567", "Tech|Corp", "CTO, Founder")
	c.AddModelOfInterest("GPT-4, Claude")

	require.NoError(t, store.Save([]*model.Client{c}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Tech/Corp", got.Company)
	assert.Equal(t, "CTO, Founder", got.Position)
	assert.Equal(t, []string{"GPT-4; Claude"}, got.ModelsOfInterest)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewClientFileStore(filepath.Join(t.TempDir(), "absent.txt"))

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.jsonl")
	store := NewJSONFileStore[*model.TutoringSession](path)

	s1 := model.NewTutoringSession(1, 1, 1, []int{1, 3}, "2025-03-10", "14:00", 90, true, "Zoom")
	s1.Complete(4.5, "great progress", "prompt design")
	s2 := model.NewTutoringSession(2, 2, 2, []int{2}, "2025-03-20", "10:00", 60, true, "Teams")

	require.NoError(t, store.Save([]*model.TutoringSession{s1, s2}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, model.SessionCompleted, loaded[0].Status)
	assert.Equal(t, []int{1, 3}, loaded[0].AIModelIDs)
	assert.Equal(t, model.SessionScheduled, loaded[1].Status)
}

func TestUserFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.jsonl")
	store := NewUserFileStore(path)

	admin := &model.Admin{
		UserBase:       model.UserBase{ID: 1, Username: "admin", Password: "admin123", FirstName: "Alex", LastName: "Morgan"},
		AccessLevel:    "Full",
		CanManageAI:    true,
		CanManageUsers: true,
	}
	tutor := model.NewTutor(2, "tutor", "tutor123", "Ming", "Chen", "ming@example.com", "555-987-6543",
		[]string{"GPT-4"}, []string{"NLP"}, "PhD in Computer Science", 5, 75)

	require.NoError(t, store.Save([]model.User{admin, tutor}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	gotAdmin, ok := loaded[0].(*model.Admin)
	require.True(t, ok)
	assert.Equal(t, "admin123", gotAdmin.Password)
	assert.True(t, gotAdmin.CanManageUsers)

	gotTutor, ok := loaded[1].(*model.Tutor)
	require.True(t, ok)
	assert.Equal(t, "tutor123", gotTutor.Password)
	assert.Equal(t, []string{"GPT-4"}, gotTutor.Specializations)
	assert.Equal(t, model.RoleTutor, gotTutor.Role())
}

func TestSaveOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.txt")
	store := NewClientFileStore(path)

	a := model.NewClient(1, "John", "Doe", "john@techcorp.com", "555-123-4567", "", "")
	b := model.NewClient(2, "Jane", "Smith", "jane@data.com", "555-987-6543", "", "")

	require.NoError(t, store.Save([]*model.Client{a, b}))
	require.NoError(t, store.Save([]*model.Client{b}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded[0].ID)
}
