package service

import (
	"CodeConnect/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTagPreferencesRejectsUnknownTag(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}

	err := f.preferenceSvc.SaveTagPreferences(context.Background(), 1, []uint64{10, 99})
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestSaveTagPreferencesReplacesExisting(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}, {ID: 11, Name: "cli"}}
	f.preferences.tagIDs[1] = []uint64{10}

	err := f.preferenceSvc.SaveTagPreferences(context.Background(), 1, []uint64{11})
	require.NoError(t, err)
	assert.Equal(t, []uint64{11}, f.preferences.tagIDs[1])
}

func TestSaveTechnologyPreferencesRejectsUnknownTechnology(t *testing.T) {
	f := newEngineFixture()

	err := f.preferenceSvc.SaveTechnologyPreferences(context.Background(), 1, []uint64{99})
	assert.ErrorIs(t, err, ErrTechnologyNotFound)
}

func TestSaveProfileValidation(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	err := f.preferenceSvc.SaveProfile(ctx, 1, []int{3}, "hourly")
	assert.ErrorIs(t, err, ErrEmailFrequency)

	err = f.preferenceSvc.SaveProfile(ctx, 1, []int{0}, model.EmailFrequencyDaily)
	assert.ErrorIs(t, err, ErrParamInvalid)

	err = f.preferenceSvc.SaveProfile(ctx, 1, []int{6}, model.EmailFrequencyDaily)
	assert.ErrorIs(t, err, ErrParamInvalid)

	err = f.preferenceSvc.SaveProfile(ctx, 1, []int{2, 3}, model.EmailFrequencyWeekly)
	require.NoError(t, err)
	require.NotNil(t, f.preferences.profile[1])
	assert.Equal(t, model.EmailFrequencyWeekly, f.preferences.profile[1].EmailFrequency)
}

func TestGetPreferencesDefaultsToNever(t *testing.T) {
	f := newEngineFixture()

	prefs, err := f.preferenceSvc.GetPreferences(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.EmailFrequencyNever, prefs.EmailFrequency)
	assert.Empty(t, prefs.Tags)
	assert.Empty(t, prefs.Technologies)
}

func TestGetInferredTagNames(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}, {ID: 11, Name: "cli"}}
	f.addProject(101, 2, nil, []uint64{10}, nil)
	f.addProject(102, 2, nil, []uint64{10, 11}, nil)

	names, err := f.preferenceSvc.GetInferredTagNames(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, names)

	f.addInteraction(1, 101, model.InteractionTypeView)
	f.addInteraction(1, 102, model.InteractionTypeLike)

	names, err = f.preferenceSvc.GetInferredTagNames(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"web", "cli"}, names)
}
