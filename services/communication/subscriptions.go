package communication

import (
	"errors"
	"fmt"
	"time"

	"obstacle-detection/models"
)

// unsolicitedIndex marks error datagrams that answer no received datagram
const unsolicitedIndex = -1

type Subscription struct {
	Connection *ClientConnection
	Content    string
	Topic      string
	Interval   float32 // Seconds between periodic updates
	StopSignal chan struct{}
}

// ValidateSubscription checks a subscription request before it is started.
func ValidateSubscription(content string, topic string, interval float32) error {
	switch content {
	case "periodic-updates":
		if topic != "boundary" && topic != "statistics" {
			return fmt.Errorf("unsupported topic of subscription: %v", topic)
		}
		if interval <= 0 {
			return fmt.Errorf("interval of periodic updates must be positive, got %v", interval)
		}
	case "live-updates":
		if topic != "" && topic != "boundary" {
			return fmt.Errorf("unsupported topic of subscription: %v", topic)
		}
	default:
		return errors.New("invalid content parameter: " + content)
	}
	return nil
}

func (subscription *Subscription) Start() error {
	switch subscription.Content {
	case "periodic-updates":
		return subscription.SendIntervalUpdates()
	case "live-updates":
		return subscription.SendLiveUpdates()
	}
	return errors.New("invalid content parameter: " + subscription.Content)
}

func (subscription *Subscription) Stop() {
	close(subscription.StopSignal)
}

// SendLiveUpdates sends the boundary every time it is reset.
func (subscription *Subscription) SendLiveUpdates() error {
	_, changed := subscription.Connection.Model.Watch(true)
	for {
		select {
		case <-subscription.StopSignal:
			return nil
		case <-changed:
		}

		bound, next := subscription.Connection.Model.Watch(true)
		changed = next
		subscription.Connection.respond(unsolicitedIndex, NewBoundaryDatagram(bound), true)
	}
}

func (subscription *Subscription) SendIntervalUpdates() error {
	for {
		// Send update
		var datagram models.IDatagram
		switch subscription.Topic {
		case "boundary":
			datagram = NewBoundaryDatagram(subscription.Connection.Model.GetBoundary(true))
		case "statistics":
			datagram = &models.UpdateStatisticsDatagram{
				BaseDatagram: models.BaseDatagram{Type: "update_statistics"},
				Statistics:   subscription.Connection.Model.GetStatistics(true).ToJSON(),
			}
		default:
			return fmt.Errorf("unsupported topic of subscription: %v", subscription.Topic)
		}

		subscription.Connection.respond(unsolicitedIndex, datagram, true)

		// Wait for next interval
		select {
		case <-subscription.StopSignal:
			return nil
		case <-time.After(time.Duration(subscription.Interval * float32(time.Second))):
		}
	}
}
