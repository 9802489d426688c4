package api

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/threadnet-protocol/threadnet-go/pkg/dataset"
	"github.com/threadnet-protocol/threadnet-go/pkg/log"
)

// writeTimeout bounds every outbound websocket write so a client that
// stops reading cannot hold the write mutex forever.
const writeTimeout = 10 * time.Second

// session serves one WebSocket connection. Requests are handled serially
// in the read loop; subscription events arrive from resolution goroutines,
// so every write goes through writeMu.
type session struct {
	logger *slog.Logger
	audit  log.Logger
	conn   *websocket.Conn
	store  *dataset.Store
	hub    *RouterHub

	writeMu sync.Mutex

	// subs maps a subscription id (the discover_routers request id) to
	// its hub registration. Only touched from the read loop.
	subs map[uint64]*RouterSub
}

func newSession(conn *websocket.Conn, store *dataset.Store, hub *RouterHub, logger *slog.Logger, audit log.Logger) *session {
	return &session{
		logger: logger,
		audit:  audit,
		conn:   conn,
		store:  store,
		hub:    hub,
		subs:   make(map[uint64]*RouterSub),
	}
}

// run processes requests until the connection closes, then releases all
// subscriptions the client left open.
func (s *session) run() {
	defer s.teardown()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.sendError(0, CodeInvalidFormat, "malformed request: "+err.Error())
			continue
		}

		s.dispatch(&req)
	}
}

func (s *session) teardown() {
	for id, sub := range s.subs {
		if err := s.hub.Unsubscribe(sub); err != nil {
			s.logger.Warn("failed to release subscription", "subscription_id", id, "error", err)
		}
	}
	s.subs = nil
	s.conn.Close()
}

func (s *session) dispatch(req *Request) {
	switch req.Command {
	case CommandAddDatasetTLV:
		s.handleAddDataset(req)
	case CommandDeleteDataset:
		s.handleDeleteDataset(req)
	case CommandListDatasets:
		s.handleListDatasets(req)
	case CommandGetDatasetTLV:
		s.handleGetDatasetTLV(req)
	case CommandSetPreferredDataset:
		s.handleSetPreferred(req)
	case CommandDiscoverRouters:
		s.handleDiscoverRouters(req)
	case CommandUnsubscribe:
		s.handleUnsubscribe(req)
	default:
		s.sendError(req.ID, CodeUnknownCommand, "unknown command "+req.Command)
	}
}

func (s *session) handleAddDataset(req *Request) {
	ds, err := s.store.Add(req.Source, req.TLV)
	if err != nil {
		s.sendFailure(req.ID, err)
		return
	}
	s.audit.Log(log.DatasetEvent(log.ActionAdded, ds.ID, ds.Source))
	s.sendResult(req.ID, nil)
}

func (s *session) handleDeleteDataset(req *Request) {
	if err := s.store.Delete(req.DatasetID); err != nil {
		s.sendFailure(req.ID, err)
		return
	}
	s.audit.Log(log.DatasetEvent(log.ActionDeleted, req.DatasetID, ""))
	s.sendResult(req.ID, nil)
}

func (s *session) handleListDatasets(req *Request) {
	preferred := s.store.Preferred()
	datasets := s.store.List()

	result := ListDatasetsResult{Datasets: make([]DatasetInfo, 0, len(datasets))}
	for _, ds := range datasets {
		result.Datasets = append(result.Datasets, datasetInfo(ds, ds.ID == preferred))
	}
	s.sendResult(req.ID, result)
}

func (s *session) handleGetDatasetTLV(req *Request) {
	ds, err := s.store.Get(req.DatasetID)
	if err != nil {
		s.sendFailure(req.ID, err)
		return
	}
	s.sendResult(req.ID, GetDatasetTLVResult{TLV: ds.TLV})
}

func (s *session) handleSetPreferred(req *Request) {
	if err := s.store.SetPreferred(req.DatasetID); err != nil {
		s.sendFailure(req.ID, err)
		return
	}
	s.audit.Log(log.DatasetEvent(log.ActionPreferred, req.DatasetID, ""))
	s.sendResult(req.ID, nil)
}

func (s *session) handleDiscoverRouters(req *Request) {
	if _, ok := s.subs[req.ID]; ok {
		s.sendError(req.ID, CodeInvalidFormat, "subscription id already in use")
		return
	}

	subID := req.ID
	sub, known, err := s.hub.Subscribe(func(event Event) {
		s.pushEvent(subID, event)
	})
	if err != nil {
		s.sendFailure(req.ID, err)
		return
	}

	s.subs[subID] = sub
	s.sendResult(req.ID, nil)

	// Replay already-known routers after the acknowledgment, then open
	// live delivery. The client never sees an event before the result.
	for _, r := range known {
		s.pushEvent(subID, RouterDiscoveredEvent(r))
	}
	sub.Start()
}

func (s *session) handleUnsubscribe(req *Request) {
	sub, ok := s.subs[req.SubscriptionID]
	if !ok {
		s.sendError(req.ID, CodeNotFound, "unknown subscription")
		return
	}
	delete(s.subs, req.SubscriptionID)

	if err := s.hub.Unsubscribe(sub); err != nil {
		s.sendFailure(req.ID, err)
		return
	}
	s.sendResult(req.ID, nil)
}

func (s *session) sendResult(id uint64, result any) {
	s.write(Response{ID: id, Type: MessageTypeResult, Success: true, Result: result})
}

func (s *session) sendFailure(id uint64, err error) {
	s.write(Response{ID: id, Type: MessageTypeResult, Success: false, Error: errorInfo(err)})
}

func (s *session) sendError(id uint64, code, message string) {
	s.write(Response{ID: id, Type: MessageTypeResult, Success: false,
		Error: &ErrorInfo{Code: code, Message: message}})
}

func (s *session) pushEvent(subID uint64, event Event) {
	s.write(EventMessage{ID: subID, Type: MessageTypeEvent, Event: event})
}

func (s *session) write(msg any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug("failed to write websocket message", "error", err)
	}
}
