package internal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const lookupCompletedSubject = "scout.lookup.completed"

// NATSClient emits lookup-completed events so companion tools (the Discord
// bot, dashboards) can react to finished scouting checks without polling.
type NATSClient struct {
	Conn   *nats.Conn
	logger *Logger
}

func NewNATSClient(cfg *Config, logger *Logger) (*NATSClient, error) {
	conn, err := nats.Connect(cfg.NATSUrl,
		nats.Name(cfg.NATSClientID),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSClient{Conn: conn, logger: logger}, nil
}

func (nc *NATSClient) PublishLookupCompleted(report *Report) error {
	event := LookupEvent{
		ID:        uuid.New().String(),
		Report:    *report,
		EmittedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return nc.Conn.Publish(lookupCompletedSubject, data)
}

// StartReportWorker subscribes a queue worker that persists lookup events to
// the report store, keeping the write out of the request path.
func (nc *NATSClient) StartReportWorker(store ReportStore) (*nats.Subscription, error) {
	handler := func(msg *nats.Msg) {
		nc.persistEvent(msg, store)
	}

	sub, err := nc.Conn.QueueSubscribe(lookupCompletedSubject, "report-workers", handler)
	if err != nil {
		return nil, err
	}

	nc.logger.Info("report_worker_started").
		Component("nats").
		Operation("subscribe").
		Meta("subject", lookupCompletedSubject).
		Log()
	return sub, nil
}

func (nc *NATSClient) persistEvent(msg *nats.Msg, store ReportStore) {
	var event LookupEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		nc.logger.Error("lookup_event_unmarshal_failed").
			Component("nats").
			Operation("persist_event").
			Err(err).
			Log()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.SaveReport(ctx, &event.Report); err != nil {
		nc.logger.Error("lookup_event_persist_failed").
			Component("nats").
			Operation("persist_event").
			Err(err).
			Meta("event_id", event.ID).
			Log()
		return
	}

	nc.logger.Debug("lookup_event_persisted").
		Component("nats").
		Operation("persist_event").
		PUUID(event.Report.PUUID).
		Meta("event_id", event.ID).
		Log()
}

func (nc *NATSClient) Close() {
	if nc.Conn != nil {
		nc.Conn.Close()
	}
}
