package models

const (
	TimestampFormat = "2006-01-02T15:04:05.999Z"
)

type IDatagram interface {
	GetIndex() int
	SetIndex(index int)

	GetType() string
	SetType(newType string)

	GetTimestamp() string
	SetTimestamp(timestamp string)
}

// BaseDatagram Datagram
type BaseDatagram struct {
	Index     int    `json:"index"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

func (datagram *BaseDatagram) GetIndex() int {
	return datagram.Index
}

func (datagram *BaseDatagram) SetIndex(index int) {
	datagram.Index = index
}

func (datagram *BaseDatagram) GetType() string {
	return datagram.Type
}

func (datagram *BaseDatagram) SetType(newType string) {
	datagram.Type = newType
}

func (datagram *BaseDatagram) GetTimestamp() string {
	return datagram.Timestamp
}

func (datagram *BaseDatagram) SetTimestamp(timestamp string) {
	datagram.Timestamp = timestamp
}

type SubscribeDatagram struct {
	BaseDatagram
	Content  string  `json:"content"`
	Topic    string  `json:"topic"`
	Interval float32 `json:"interval"`
}

type UnsubscribeDatagram struct {
	BaseDatagram
	Content string `json:"content"`
}

type AcknowledgeDatagram struct {
	BaseDatagram
	AcknowledgingIndex int `json:"acknowledgingIndex"`
}

type ErrorDatagram struct {
	BaseDatagram
	ErroredIndex int    `json:"erroredIndex"`
	Message      string `json:"message"`
}

type BoundaryDatagram struct {
	BaseDatagram
	Boundary BoundaryJSON `json:"boundary"`
	Vertices []PointJSON  `json:"vertices"`
	Center   PointJSON    `json:"center"`
}

type ResetBoundaryDatagram struct {
	BaseDatagram
	Boundary BoundaryJSON `json:"boundary"`
}

type CheckPointsDatagram struct {
	BaseDatagram
	Points []PointJSON `json:"points"`
}

type PointsInsideDatagram struct {
	BaseDatagram
	CheckedIndex int         `json:"checkedIndex"`
	Inside       []bool      `json:"inside"`
	Points       []PointJSON `json:"points"`
}

type UpdateStatisticsDatagram struct {
	BaseDatagram
	Statistics ContainmentStatisticsJSON `json:"statistics"`
}

type ContainmentStatisticsJSON struct {
	Checks        int64   `json:"checks"`
	PointsChecked int64   `json:"pointsChecked"`
	PointsInside  int64   `json:"pointsInside"`
	InsideRatio   float64 `json:"insideRatio"`
	LastCheck     string  `json:"lastCheck"`
}

type PointsPartitionDatagram struct {
	BaseDatagram
	CheckedIndex int         `json:"checkedIndex"`
	Inside       []PointJSON `json:"inside"`
	Outside      []PointJSON `json:"outside"`
}
