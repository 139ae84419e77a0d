package communication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"obstacle-detection/geometry"
	"obstacle-detection/models"
)

const storeTimeout = 2 * time.Second

// ErrMarshalDatagram is returned by WriteDatagram when the datagram cannot be encoded,
// the client can still be told about it.
var ErrMarshalDatagram = errors.New("marshalling datagram")

type IConnection interface {
	WriteDatagram(datagram models.IDatagram, safe bool) error
	ProcessDatagram(data []byte, safe bool)
	OnDead(safe bool) // Called when the KeepAliveTimeout is reached before deletion of this connection.
	GetKeepAliveTimeout(safe bool) float32
	GetClientAddress(safe bool) *net.UDPAddr

	SetKeepAliveTimer(timer *time.Timer, safe bool)
	GetKeepAliveTimer(safe bool) *time.Timer
}

/* Common Connection */

type Connection struct {
	sync.Mutex
	UDPConn           *net.UDPConn
	ClientAddress     *net.UDPAddr
	NextSendIndex     int
	LastReceivedIndex int
	Model             *BoundaryModel
	KeepAliveTimeout  float32 // Seconds, after which is the connection discarded if no datagram arrived. 0 for no timeout
	KeepAliveTimer    *time.Timer
	// Reject reset boundaries with negative dimensions, non finite ones are always rejected
	ValidateBoundaries bool
}

func (connection *Connection) WriteDatagram(datagram models.IDatagram, safe bool) error {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}

	datagram.SetTimestamp(time.Now().UTC().Format(models.TimestampFormat))
	datagram.SetIndex(connection.NextSendIndex)
	connection.NextSendIndex++

	data, err := json.Marshal(datagram)
	if err != nil {
		sentry.CaptureException(err)
		log.Error().Err(err).Str("type", datagram.GetType()).Msg("Error marshalling datagram")
		return fmt.Errorf("%w %v: %v", ErrMarshalDatagram, datagram.GetType(), err)
	}

	_, err = connection.UDPConn.WriteToUDP(data, connection.ClientAddress)
	if err != nil {
		sentry.CaptureException(err)
		log.Error().Err(err).Stringer("client", connection.ClientAddress).Msg("Error writing datagram")
		return err
	}
	log.Debug().Stringer("client", connection.ClientAddress).Bytes("data", data[:min(len(data), 128)]).Msg("Sending message")
	return nil
}

// respond writes datagram as the answer to the datagram with the given index.
// A datagram that cannot be encoded is replaced by an error datagram.
func (connection *Connection) respond(index int, datagram models.IDatagram, safe bool) {
	err := connection.WriteDatagram(datagram, safe)
	if errors.Is(err, ErrMarshalDatagram) {
		connection.writeError(index, err.Error(), safe)
	}
}

func (connection *Connection) acknowledge(index int, safe bool) {
	connection.WriteDatagram(&models.AcknowledgeDatagram{
		BaseDatagram:       models.BaseDatagram{Type: "acknowledge"},
		AcknowledgingIndex: index,
	}, safe)
}

func (connection *Connection) writeError(index int, message string, safe bool) {
	connection.WriteDatagram(&models.ErrorDatagram{
		BaseDatagram: models.BaseDatagram{Type: "error"},
		ErroredIndex: index,
		Message:      message,
	}, safe)
}

func (connection *Connection) OnDead(safe bool) {
}

func (connection *Connection) GetKeepAliveTimeout(safe bool) float32 {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	return connection.KeepAliveTimeout
}

func (connection *Connection) GetClientAddress(safe bool) *net.UDPAddr {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	return connection.ClientAddress
}

func (connection *Connection) GetKeepAliveTimer(safe bool) *time.Timer {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	return connection.KeepAliveTimer
}

func (connection *Connection) SetKeepAliveTimer(timer *time.Timer, safe bool) {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	connection.KeepAliveTimer = timer
}

func NewBoundaryDatagram(bound geometry.RectangleBoundary) *models.BoundaryDatagram {
	return &models.BoundaryDatagram{
		BaseDatagram: models.BaseDatagram{Type: "boundary"},
		Boundary:     models.NewBoundaryJSON(bound),
		Vertices:     models.NewPointsJSON(bound.Vertices()),
		Center:       models.NewPointJSON(bound.Center()),
	}
}

func (connection *Connection) validateBoundary(boundary models.BoundaryJSON) (geometry.RectangleBoundary, error) {
	if connection.ValidateBoundaries {
		return geometry.NewValidatedRectangleBoundary(boundary.XDim, boundary.YDim, boundary.Position.ToPoint())
	}
	bound := boundary.ToBoundary()
	if err := geometry.ValidateFinite(bound); err != nil {
		return geometry.RectangleBoundary{}, err
	}
	return bound, nil
}

/* Connection from a boundary client */

type ClientConnection struct {
	Connection
	Subscriptions map[string]*Subscription // Mapping content to subscription (only one subscription to each type can exist)
}

func (connection *ClientConnection) ProcessDatagram(data []byte, safe bool) {
	// Parse data to JSON
	var datagram models.BaseDatagram
	err := json.Unmarshal(data, &datagram)
	if err != nil {
		log.Warn().Err(err).Msg("Parsing JSON failed")
		return
	}

	switch datagram.Type {
	case "connect", "keepalive", "ping":
		connection.acknowledge(datagram.Index, safe)

	case "subscribe":
		var subscribeDatagram models.SubscribeDatagram
		if err := json.Unmarshal(data, &subscribeDatagram); err != nil {
			connection.writeError(datagram.Index, err.Error(), safe)
			break
		}
		if err := ValidateSubscription(subscribeDatagram.Content, subscribeDatagram.Topic, subscribeDatagram.Interval); err != nil {
			connection.writeError(datagram.Index, err.Error(), safe)
			break
		}

		connection.Subscribe(&subscribeDatagram, safe)
		connection.acknowledge(datagram.Index, safe)

	case "unsubscribe":
		var unsubscribeDatagram models.UnsubscribeDatagram
		if err := json.Unmarshal(data, &unsubscribeDatagram); err != nil {
			connection.writeError(datagram.Index, err.Error(), safe)
			break
		}

		connection.Unsubscribe(unsubscribeDatagram.Content, safe)
		connection.acknowledge(datagram.Index, safe)

	case "request_boundary":
		connection.respond(datagram.Index, NewBoundaryDatagram(connection.Model.GetBoundary(true)), safe)

	case "reset_boundary":
		var resetDatagram models.ResetBoundaryDatagram
		if err := json.Unmarshal(data, &resetDatagram); err != nil {
			connection.writeError(datagram.Index, err.Error(), safe)
			break
		}

		bound, err := connection.validateBoundary(resetDatagram.Boundary)
		if err != nil {
			connection.writeError(datagram.Index, err.Error(), safe)
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		err = connection.Model.ResetBoundary(ctx, bound)
		cancel()
		if err != nil {
			// The boundary is in use already, only persisting it failed
			sentry.CaptureException(err)
			log.Error().Err(err).Msg("Failed to persist boundary")
		}
		connection.acknowledge(datagram.Index, safe)

	case "check_points", "partition_points":
		var checkDatagram models.CheckPointsDatagram
		if err := json.Unmarshal(data, &checkDatagram); err != nil {
			connection.writeError(datagram.Index, err.Error(), safe)
			break
		}

		points := models.ToPoints(checkDatagram.Points)
		result := connection.Model.CheckPoints(points, true)
		if datagram.Type == "partition_points" {
			inside, outside := geometry.Partition(points, result.Boundary)
			connection.respond(datagram.Index, &models.PointsPartitionDatagram{
				BaseDatagram: models.BaseDatagram{Type: "points_partition"},
				CheckedIndex: datagram.Index,
				Inside:       models.NewPointsJSON(inside),
				Outside:      models.NewPointsJSON(outside),
			}, safe)
		} else {
			connection.respond(datagram.Index, &models.PointsInsideDatagram{
				BaseDatagram: models.BaseDatagram{Type: "points_inside"},
				CheckedIndex: datagram.Index,
				Inside:       result.Inside,
				Points:       models.NewPointsJSON(geometry.FilterInside(points, result.Boundary)),
			}, safe)
		}

		// Off the read loop, a slow store must not hold up other clients
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			if err := connection.Model.PersistStatistics(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to persist containment statistics")
			}
		}()

	default:
		connection.writeError(datagram.Index, fmt.Sprintf("unsupported datagram type: %v", datagram.Type), safe)
	}

	if safe {
		connection.Lock()
	}
	connection.LastReceivedIndex = datagram.Index
	if safe {
		connection.Unlock()
	}
}

func (connection *ClientConnection) Subscribe(datagram *models.SubscribeDatagram, safe bool) {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	connection.Unsubscribe(datagram.Content, false) // Delete existing subscription if any
	subscription := &Subscription{
		Connection: connection,
		Content:    datagram.Content,
		Topic:      datagram.Topic,
		Interval:   datagram.Interval,
		StopSignal: make(chan struct{}),
	}
	connection.Subscriptions[datagram.Content] = subscription
	go func() {
		err := subscription.Start()
		if err != nil {
			log.Error().Err(err).Msg("Subscription ended due to an error")
		}
	}()
}

func (connection *ClientConnection) Unsubscribe(content string, safe bool) {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	subscription, ok := connection.Subscriptions[content]
	if ok {
		subscription.Stop()
		delete(connection.Subscriptions, content)
	}
}

func (connection *ClientConnection) UnsubscribeAll(safe bool) {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	for content := range connection.Subscriptions {
		connection.Unsubscribe(content, false)
	}
}

func (connection *ClientConnection) GetSubscription(content string, safe bool) *Subscription {
	if safe {
		connection.Lock()
		defer connection.Unlock()
	}
	return connection.Subscriptions[content]
}

func (connection *ClientConnection) OnDead(safe bool) {
	connection.UnsubscribeAll(safe)
}
