package logs

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"mocha/internal/app/bus"
)

// RefreshMsg signals that the visible entry set may have changed
type RefreshMsg struct{}

// ReadErrorMsg carries a failed poll for the status bar
type ReadErrorMsg struct {
	Name string
	Err  string
}

// Sender holds a function to send messages to Bubble Tea. The program's
// Send is not available until the program is built, so the UI wires it in
// after construction.
type Sender struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewSender creates a new Sender
func NewSender() *Sender {
	return &Sender{}
}

// Set sets the send function
func (s *Sender) Set(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.send = send
}

// Send sends a message if the send function is set
func (s *Sender) Send(msg tea.Msg) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.send != nil {
		s.send(msg)
	}
}

// Subscriber forwards session events from the bus to the UI via Sender
type Subscriber struct {
	eventBus bus.Bus
	sender   *Sender
}

// NewSubscriber creates a new event subscriber
func NewSubscriber(eventBus bus.Bus, sender *Sender) *Subscriber {
	return &Subscriber{
		eventBus: eventBus,
		sender:   sender,
	}
}

// Start begins forwarding events until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) {
	eventChan := s.eventBus.Subscribe(ctx)

	go s.processEvents(eventChan)
}

func (s *Subscriber) processEvents(eventChan <-chan bus.Event) {
	for event := range eventChan {
		switch event.Type {
		case bus.EventReadFailed:
			if data, ok := event.Data.(bus.ReadFailed); ok {
				errText := ""
				if data.Error != nil {
					errText = data.Error.Error()
				}

				s.sender.Send(ReadErrorMsg{Name: data.Name, Err: errText})
			}

		default:
			// Every other event changes what the views should show
			s.sender.Send(RefreshMsg{})
		}
	}
}
