package communication

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ConnectionsManager struct {
	sync.Mutex
	Connections      map[string]IConnection
	Model            *BoundaryModel
	KeepAliveTimeout float32
	Logger           *zerolog.Logger // Input log, nil to disable
	// Passed to every new connection, see Connection.ValidateBoundaries
	ValidateBoundaries bool
}

func NewConnectionsManager(model *BoundaryModel, keepAliveTimeout float32, inputLogger *zerolog.Logger) *ConnectionsManager {
	return &ConnectionsManager{
		Connections:      make(map[string]IConnection),
		Model:            model,
		KeepAliveTimeout: keepAliveTimeout,
		Logger:           inputLogger,
	}
}

func (manager *ConnectionsManager) StartListening(port int, safe bool) error {
	serverAddress := net.UDPAddr{Port: port, IP: net.ParseIP("0.0.0.0")}
	conn, err := net.ListenUDP("udp", &serverAddress)
	if err != nil {
		return fmt.Errorf("initializing UDP server: %w", err)
	}

	log.Info().Int("port", port).Msg("Server listening")
	return manager.Serve(conn, safe)
}

// Serve reads datagrams from conn until it is closed.
func (manager *ConnectionsManager) Serve(conn *net.UDPConn, safe bool) error {
	readBuffer := make([]byte, 65536)
	port := conn.LocalAddr().(*net.UDPAddr).Port

	// Datagram reading loop
	for {
		readBufferLength, clientAddress, err := conn.ReadFromUDP(readBuffer)
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		if err != nil {
			log.Warn().Err(err).Msg("Error reading message")
			continue
		}

		data := readBuffer[:readBufferLength]
		log.Debug().Int("port", port).Stringer("client", clientAddress).Bytes("data", data[:min(readBufferLength, 64)]).Msg("Read a message")
		manager.LogInput(string(data), clientAddress, port)

		var connection = manager.GetOrCreateConnection(conn, clientAddress, safe)

		// Keep Alive check
		timeout := connection.GetKeepAliveTimeout(true)
		if timeout > 0 {
			timer := connection.GetKeepAliveTimer(true)
			if timer != nil {
				timer.Stop()
			}
			connection.SetKeepAliveTimer(time.AfterFunc(time.Duration(timeout*float32(time.Second)), func() {
				log.Info().Stringer("client", clientAddress).Msg("KeepAlive timed out - discarding connection")
				manager.DeleteConnection(connection, true)
			}), true)
		}

		connection.ProcessDatagram(data, true)
	}
}

func (manager *ConnectionsManager) GetOrCreateConnection(conn *net.UDPConn, addr *net.UDPAddr, safe bool) IConnection {
	if safe {
		manager.Lock()
		defer manager.Unlock()
	}

	var addrString = addr.String()
	connection, ok := manager.Connections[addrString]
	if !ok {
		connection = &ClientConnection{
			Connection: Connection{
				UDPConn:           conn,
				ClientAddress:     addr,
				NextSendIndex:     1,
				LastReceivedIndex: -1,
				Model:             manager.Model,
				KeepAliveTimeout:  manager.KeepAliveTimeout,

				ValidateBoundaries: manager.ValidateBoundaries,
			},
			Subscriptions: make(map[string]*Subscription),
		}
		manager.Connections[addrString] = connection
	}
	return connection
}

func (manager *ConnectionsManager) GetConnectionsCount(safe bool) int {
	if safe {
		manager.Lock()
		defer manager.Unlock()
	}
	return len(manager.Connections)
}

func (manager *ConnectionsManager) DeleteConnection(connection IConnection, safe bool) {
	if safe {
		manager.Lock()
		defer manager.Unlock()
	}
	connection.OnDead(true)
	delete(manager.Connections, connection.GetClientAddress(true).String())
}

// DeleteAllConnections stops every subscription, used on shutdown.
func (manager *ConnectionsManager) DeleteAllConnections(safe bool) {
	if safe {
		manager.Lock()
		defer manager.Unlock()
	}
	for _, connection := range manager.Connections {
		if timer := connection.GetKeepAliveTimer(true); timer != nil {
			timer.Stop()
		}
		manager.DeleteConnection(connection, false)
	}
}

func (manager *ConnectionsManager) LogInput(message string, clientAddress *net.UDPAddr, port int) {
	if manager.Logger != nil {
		manager.Logger.Info().
			Int("receivingPort", port).
			IPAddr("sourceIP", clientAddress.IP).
			Int("sourcePort", clientAddress.Port).
			Msg(message)
	}
}
