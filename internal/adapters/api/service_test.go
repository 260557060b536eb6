package api_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	planningQueries "github.com/andrescamacho/craftchain-go/internal/application/planning/queries"
	"github.com/andrescamacho/craftchain-go/internal/application/setup"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

func newLocalService(t *testing.T) *api.LocalService {
	t.Helper()
	provider := services.NewStaticCatalogProvider(helpers.WorkedExampleCatalog())
	m, err := setup.NewHandlerRegistry(provider, planningQueries.ComputePlanOptions{MaxScaleFactor: 20}).CreateConfiguredMediator()
	require.NoError(t, err)
	return api.NewLocalService(m)
}

func TestLocalService_ComputePlan_WorkedExample(t *testing.T) {
	svc := newLocalService(t)

	view, err := svc.ComputePlan(context.Background(), api.PlanRequest{
		Targets: []api.TargetView{{ItemID: "a", RatePerMin: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "fractional", view.RatioMode)
	assert.Equal(t, 1, view.ScaleFactor)
	assert.InDelta(t, 7.0, view.TotalMachines, 1e-9)
	assert.Equal(t, []string{"c"}, view.RawInputs)
	assert.Empty(t, view.Bottlenecks)

	require.Len(t, view.Items, 3)
	assert.Equal(t, "a", view.Items[0].ItemID)
	assert.Equal(t, "Alpha Gear", view.Items[0].ItemName)
	assert.InDelta(t, 6.0, view.Items[1].NeededPerMin, 1e-9)
	assert.InDelta(t, 12.0, view.Items[2].NeededPerMin, 1e-9)
	assert.Nil(t, view.Items[2].YieldPerMin)

	require.Len(t, view.Steps, 2)
	assert.Equal(t, "r_a", view.Steps[0].RecipeID)
	assert.Equal(t, "Assembler", view.Steps[0].FacilityName)
	require.NotNil(t, view.Steps[1].Machines)
	assert.InDelta(t, 6.0, *view.Steps[1].Machines, 1e-9)
	assert.Equal(t, []string{"b"}, view.Steps[1].Outputs)

	assert.NotEmpty(t, view.Graph.Nodes)
	assert.NotEmpty(t, view.Graph.Edges)
}

func TestLocalService_ComputePlan_RejectsRatioMode(t *testing.T) {
	svc := newLocalService(t)

	_, err := svc.ComputePlan(context.Background(), api.PlanRequest{
		Targets:   []api.TargetView{{ItemID: "a", RatePerMin: 1}},
		RatioMode: "sideways",
	})

	var invalid *shared.ValidationError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "ratioMode", invalid.Field)
	assert.Equal(t, api.KindInvalid, api.Classify(err))
}

func TestLocalService_BuildChain(t *testing.T) {
	svc := newLocalService(t)

	view, err := svc.BuildChain(context.Background(), api.ChainRequest{ItemID: "a"})
	require.NoError(t, err)

	assert.Equal(t, "Alpha Gear", view.ItemName)
	assert.Equal(t, view.TotalNodes, len(view.Nodes))
	assert.Equal(t, []string{"c"}, view.RawMaterials)
	assert.NotNil(t, view.Alternatives)
}

func TestLocalService_NotFound(t *testing.T) {
	svc := newLocalService(t)
	ctx := context.Background()

	_, err := svc.BuildChain(ctx, api.ChainRequest{ItemID: "zzz"})
	var notFound *catalog.ItemNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "zzz", notFound.ItemID)

	_, err = svc.GetItem(ctx, "zzz")
	assert.Equal(t, api.KindNotFound, api.Classify(err))
}

func TestLocalService_GetItemAndList(t *testing.T) {
	svc := newLocalService(t)
	ctx := context.Background()

	detail, err := svc.GetItem(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Beta Plate", detail.Item.Name)
	require.Len(t, detail.ProducedBy, 1)
	assert.Equal(t, "r_b", detail.ProducedBy[0].ID)
	require.Len(t, detail.UsedIn, 1)
	assert.Equal(t, "r_a", detail.UsedIn[0].ID)

	list, err := svc.ListItems(ctx, api.ItemListRequest{RawOnly: true})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "c", list.Items[0].ID)
}

func TestLocalService_ImportCatalog(t *testing.T) {
	repo := helpers.NewMockCatalogRepository()
	reader := helpers.NewMockDatasetReader()
	reader.Datasets["data.json"] = &common.Dataset{
		Version: "1.0.0",
		Items:   helpers.WorkedExampleItems(),
		Recipes: helpers.WorkedExampleRecipes(),
	}
	provider := services.NewCachedCatalogProvider(repo)
	m, err := setup.NewHandlerRegistry(provider, planningQueries.ComputePlanOptions{}).
		WithImport(reader, repo).
		CreateConfiguredMediator()
	require.NoError(t, err)

	view, err := api.NewLocalService(m).ImportCatalog(context.Background(), "data.json")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", view.Version)
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, 2, view.RecipeCount)
	assert.Equal(t, helpers.WorkedExampleCatalog().Fingerprint(), view.Fingerprint)
}
