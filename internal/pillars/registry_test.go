package pillars

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/internal/models"
)

func TestCreate(t *testing.T) {
	for _, kind := range models.Pillars() {
		agent, err := Create(kind, nil)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, agent.Name())
	}
}

func TestCreateUnknownKind(t *testing.T) {
	_, err := Create("astrology", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "astrology")
}

func TestCreateRejectsUnknownParameters(t *testing.T) {
	_, err := Create(models.PillarFinance, map[string]any{
		"confidence":   0.9,
		"positve_typo": true,
	})
	require.Error(t, err)
}

func TestCreateDecodesParameters(t *testing.T) {
	agent, err := Create(models.PillarFinance, map[string]any{
		"positive_indicators": []string{"lucrative"},
		"confidence":          0.6,
	})
	require.NoError(t, err)

	finance, ok := agent.(*FinanceAgent)
	require.True(t, ok)
	assert.Equal(t, []string{"lucrative"}, finance.params.PositiveIndicators)
	assert.Equal(t, 0.6, finance.params.Confidence)
}

func TestNewRegistryDefaults(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	assert.Equal(t, models.Pillars(), reg.Names())

	agent, ok := reg.Lookup(models.PillarRisk)
	require.True(t, ok)
	assert.Equal(t, models.PillarRisk, agent.Name())

	_, ok = reg.Lookup("astrology")
	assert.False(t, ok)
}

func TestNewRegistryCustomName(t *testing.T) {
	reg, err := NewRegistry([]AgentSpec{
		{Name: "finance-emea", Kind: models.PillarFinance},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"finance-emea"}, reg.Names())

	status := reg.Status()
	require.Len(t, status, 1)
	assert.Equal(t, "finance-emea", status[0].Name)
	assert.Equal(t, models.PillarFinance, status[0].Kind)
	assert.True(t, status[0].Ready)
}

func TestNewRegistryDuplicateName(t *testing.T) {
	_, err := NewRegistry([]AgentSpec{
		{Name: "finance", Kind: models.PillarFinance},
		{Name: "finance", Kind: models.PillarFinance},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewRegistryBadSpec(t *testing.T) {
	_, err := NewRegistry([]AgentSpec{
		{Name: "mystery", Kind: "astrology"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestRegistryRegister(t *testing.T) {
	var reg Registry
	require.NoError(t, reg.Register(NewMockAgent("finance"), "mock"))
	require.Error(t, reg.Register(NewMockAgent("finance"), "mock"))

	assert.Equal(t, []string{"finance"}, reg.Names())
	status := reg.Status()
	require.Len(t, status, 1)
	assert.Equal(t, "mock", status[0].Kind)
}

func TestMockAgent(t *testing.T) {
	mock := NewMockAgent(models.PillarFinance)

	outcome := mock.Analyze(context.Background(), "scenario")
	assert.False(t, outcome.Failed())
	assert.Equal(t, 1, mock.Calls())

	mock.Analyze(context.Background(), "scenario")
	assert.Equal(t, 2, mock.Calls())
}

func TestMockAgentDelayHonorsContext(t *testing.T) {
	mock := NewMockAgent(models.PillarRisk)
	mock.Delay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	outcome := mock.Analyze(ctx, "scenario")
	assert.True(t, outcome.Failed())
	assert.ErrorIs(t, outcome.Err(), context.DeadlineExceeded)
}
