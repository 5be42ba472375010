package device

import (
	"context"
	"errors"
	"testing"

	"aquascape/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grams(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func testAquarium() models.Aquarium {
	return models.Aquarium{ID: 7, UserID: 1, Name: "reef", FeedingVolumeGrams: grams("2.5")}
}

func TestPoll_ScheduledFeedUsesAquariumVolume(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeFeedCommand, "Scheduled feed: 4g")

	r, err := NewProcessor(api, "sim-1", nil).Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Executed)

	require.Len(t, api.feedings, 1)
	f := api.feedings[0]
	assert.Equal(t, models.FeedModeAuto, f.Mode)
	assert.Equal(t, "sim-1", f.Actor)
	assert.True(t, f.VolumeGrams.Decimal.Equal(decimal.RequireFromString("2.5")))
	assert.Empty(t, api.alerts, "command acknowledged by delete")
}

func TestPoll_ScheduledFeedFallsBackToCommandVolume(t *testing.T) {
	aq := testAquarium()
	aq.FeedingVolumeGrams = decimal.NullDecimal{}
	api := newFakeAPI(aq)
	api.addAlert(models.AlertTypeFeedCommand, "Scheduled feed: 4g")
	api.addAlert(models.AlertTypeFeedCommand, "Scheduled feed: g")

	_, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, api.feedings, 2)
	assert.Equal(t, "4", api.feedings[0].VolumeGrams.Decimal.String())
	assert.Equal(t, "1", api.feedings[1].VolumeGrams.Decimal.String())
	assert.Equal(t, models.ActorSimulator, api.feedings[0].Actor)
}

func TestPoll_FeedNowIsManual(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeFeedCommand, `{"cmd":"feed_now","volume":0.75}`)

	_, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, api.feedings, 1)
	assert.Equal(t, models.FeedModeManual, api.feedings[0].Mode)
	assert.Equal(t, "0.75", api.feedings[0].VolumeGrams.Decimal.String())
}

func TestPoll_UpdateSettings(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeSettingsCommand, `{"cmd":"update_settings","feeding_volume_grams":3,"feeding_period_hours":12}`)

	r, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Executed)

	require.Len(t, api.updates, 1)
	assert.Equal(t, "reef", api.updates[0].Name, "untouched fields are kept")
	assert.Equal(t, "3", api.aquarium.FeedingVolumeGrams.Decimal.String())
	assert.Equal(t, 12, *api.aquarium.FeedingPeriodHours)
	assert.Empty(t, api.feedings)
	assert.Empty(t, api.alerts)
}

func TestPoll_EmptySettingsStillAcknowledged(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeSettingsCommand, `{"cmd":"update_settings","colour":"blue"}`)

	r, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Executed)
	assert.Empty(t, api.updates)
	assert.Empty(t, api.alerts)
}

func TestPoll_UnknownCommandDrained(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert("CMD_REBOOT", "")
	api.addAlert(models.AlertTypeFeedCommand, `{"cmd":"dance"}`)

	r, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Dropped)
	assert.Empty(t, api.feedings)
	assert.Empty(t, api.alerts)
}

func TestPoll_NotificationsLeftAlone(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeDangerSensor, "Dangerous reading: temp=29, ph=7")

	r, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Skipped)
	assert.Len(t, api.alerts, 1)
}

func TestPoll_FailedFeedStaysPending(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeFeedCommand, "Scheduled feed: 2.5g")
	api.feedErr = errors.New("503")

	p := NewProcessor(api, "", nil)
	r, err := p.Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Failed)
	assert.Len(t, api.alerts, 1, "command must not be acknowledged")

	api.feedErr = nil
	r, err = p.Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Executed)
	assert.Len(t, api.feedings, 1)
	assert.Empty(t, api.alerts)
}

func TestPoll_CommandForDeletedAquariumDropped(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeFeedCommand, "Scheduled feed: 2.5g")
	api.addAlert(models.AlertTypeSettingsCommand, `{"cmd":"update_settings","name":"tank"}`)
	api.aquarium.ID = 0 // deleted between list and execute

	p := NewProcessor(api, "", nil)
	r, err := p.Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Dropped)
	assert.Equal(t, 0, r.Failed)
	assert.Empty(t, api.feedings)
	assert.Empty(t, api.alerts, "orphaned commands are acknowledged")

	r, err = p.Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Seen)
}

func TestPoll_AckFailureRetriesWithDuplicateLog(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.addAlert(models.AlertTypeFeedCommand, "Scheduled feed: 2.5g")
	api.deleteErr = errors.New("timeout")

	p := NewProcessor(api, "", nil)
	r, err := p.Poll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Failed)

	api.deleteErr = nil
	_, err = p.Poll(context.Background(), 7)
	require.NoError(t, err)

	// at-least-once: one duplicate log, never a lost feed
	assert.Len(t, api.feedings, 2)
	assert.Empty(t, api.alerts)
}

func TestPoll_ListFailure(t *testing.T) {
	api := newFakeAPI(testAquarium())
	api.listErr = errors.New("connection refused")

	_, err := NewProcessor(api, "", nil).Poll(context.Background(), 7)
	assert.ErrorIs(t, err, api.listErr)
}
