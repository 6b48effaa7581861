package eventpubsub

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
)

var bus = EventBus.New()

// Init replaces the bus, dropping every subscription.
func Init() {
	bus = EventBus.New()
}

func Publish(publisherName string, topic eventmodels.EventName, event interface{}) {
	log.Debugf("%s: publishing %s", publisherName, topic)
	bus.Publish(string(topic), event)
}

// Subscribe registers callbackFn on topic. Callbacks run on the publisher's goroutine
// before Publish returns.
func Subscribe(subscriberName string, topic eventmodels.EventName, callbackFn interface{}) error {
	if err := bus.Subscribe(string(topic), callbackFn); err != nil {
		return fmt.Errorf("%s: failed to subscribe to %s: %w", subscriberName, topic, err)
	}

	log.Infof("%s: subscribed to topic %s", subscriberName, topic)
	return nil
}

func HasSubscribers(topic eventmodels.EventName) bool {
	return bus.HasCallback(string(topic))
}
