package pipeline

import (
	log "github.com/sirupsen/logrus"

	"leadboard/internal/model"
)

// Pipeline drives the Store from gestures and executes the resulting effects
// against a Notifier without waiting for them.
type Pipeline struct {
	store    *Store
	notifier Notifier
	logger   *log.Logger
}

// Outcome is the result of a drag gesture. Applied is false when the gesture
// had no destination.
type Outcome struct {
	Applied  bool
	Result   MoveResult
	Notified int
}

func New(store *Store, notifier Notifier, logger *log.Logger) *Pipeline {
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Pipeline{store: store, notifier: notifier, logger: logger}
}

func (p *Pipeline) Store() *Store {
	return p.store
}

// Load initializes the board from a freshly fetched batch.
func (p *Pipeline) Load(batch []model.Lead) {
	dropped := p.store.Initialize(batch)
	for _, lead := range dropped {
		p.logger.WithFields(log.Fields{
			"lead_id": lead.ID,
			"stage":   int(lead.Stage),
		}).Warn("lead has no pipeline stage, left off the board")
	}
	p.logger.WithFields(log.Fields{
		"leads":   len(batch) - len(dropped),
		"dropped": len(dropped),
	}).Info("board initialized")
}

// Drag applies a gesture. Gestures without a destination are a no-op.
func (p *Pipeline) Drag(ev DragEvent) (Outcome, error) {
	m, ok, err := ev.Move()
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		p.logger.WithField("column", ev.SourceColumnID).Debug("drag ended without destination")
		return Outcome{}, nil
	}
	res, notified, err := p.Move(m)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Applied: true, Result: res, Notified: notified}, nil
}

// Move commits m locally, then dispatches its effects. The local board is
// never rolled back, whatever happens to the notifications.
func (p *Pipeline) Move(m Move) (MoveResult, int, error) {
	res, err := p.store.Move(m)
	if err != nil {
		return MoveResult{}, 0, err
	}
	for _, e := range res.Effects {
		p.logger.WithFields(log.Fields{
			"lead_id": e.LeadID,
			"from":    e.From.String(),
			"to":      e.To.String(),
			"kind":    e.Kind.String(),
		}).Info("lead stage changed")
	}
	return res, Execute(res.Effects, p.notifier), nil
}
