package eventpubsub

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
)

func TestPublishSubscribe(t *testing.T) {
	Init()
	defer Init()

	assert.False(t, HasSubscribers(eventmodels.HeatmapRenderedEventName))

	var received []eventmodels.HeatmapRenderedEvent
	err := Subscribe("test", eventmodels.HeatmapRenderedEventName, func(ev eventmodels.HeatmapRenderedEvent) {
		received = append(received, ev)
	})
	require.NoError(t, err)
	assert.True(t, HasSubscribers(eventmodels.HeatmapRenderedEventName))

	id := uuid.New()
	Publish("test", eventmodels.HeatmapRenderedEventName, eventmodels.HeatmapRenderedEvent{RequestID: id, Cells: 400})

	// delivery is synchronous
	require.Len(t, received, 1)
	assert.Equal(t, id, received[0].RequestID)
	assert.Equal(t, 400, received[0].Cells)

	assert.Error(t, Subscribe("test", eventmodels.PricingCompletedEventName, "not a func"))
}
