package rose

import (
	"context"
	"time"
)

// DomainEvent is implemented by every event the rose domain emits.
type DomainEvent interface {
	EventType() string
}

// EventTypeDiagramGenerated is emitted once per successful generation.
const EventTypeDiagramGenerated = "diagram.generated"

// DiagramGeneratedEvent announces a finished diagram.
type DiagramGeneratedEvent struct {
	DiagramID      string            `json:"diagram_id"`
	OccurredAt     time.Time         `json:"occurred_at"`
	Title          string            `json:"title"`
	BinWidth       int               `json:"bin_width"`
	Palette        PaletteName       `json:"palette"`
	Measurements   int               `json:"measurements"`
	Sectors        int               `json:"sectors"`
	MaxCount       int               `json:"max_count"`
	DominantCenter *float64          `json:"dominant_center,omitempty"`
	MeanDip        float64           `json:"mean_dip"`
	Cached         bool              `json:"cached"`
	Artifacts      map[string]string `json:"artifacts,omitempty"`
}

func (DiagramGeneratedEvent) EventType() string { return EventTypeDiagramGenerated }

// NewDiagramGeneratedEvent builds the event from a generation's output.
func NewDiagramGeneratedEvent(id string, d *Diagram, s Summary, cached bool, artifacts map[string]string) *DiagramGeneratedEvent {
	ev := &DiagramGeneratedEvent{
		DiagramID:    id,
		OccurredAt:   time.Now().UTC(),
		Title:        d.Title,
		BinWidth:     d.BinWidth,
		Palette:      d.Palette,
		Measurements: s.Measurements,
		Sectors:      s.Sectors,
		MaxCount:     s.MaxCount,
		MeanDip:      s.MeanDip,
		Cached:       cached,
		Artifacts:    artifacts,
	}
	if s.DominantSector != nil {
		c := s.DominantSector.Center
		ev.DominantCenter = &c
	}
	return ev
}

// EventPublisher delivers domain events to interested parties.
type EventPublisher interface {
	PublishDiagramGenerated(ctx context.Context, ev *DiagramGeneratedEvent) error
}

//Personal.AI order the ending
