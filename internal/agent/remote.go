package agent

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

// decisionPayload is the wire form of a decision request. Cards travel
// as display strings so any client can render them without sharing the
// packed encoding.
type decisionPayload struct {
	Seat      string         `json:"seat"`
	Street    string         `json:"street"`
	Hole      []string       `json:"hole"`
	Board     []string       `json:"board"`
	Stacks    map[string]int `json:"stacks"`
	Order     []string       `json:"order"`
	Pot       int            `json:"pot"`
	ToCall    int            `json:"to_call"`
	Opened    bool           `json:"opened"`
	LastRaise int            `json:"last_raise"`
	MinBet    int            `json:"min_bet"`
}

// RemoteAgent proxies decisions to an external service over a
// websocket. Replies are free-form text carrying a JSON proposal
// somewhere inside; a slow or dead peer degrades to a check, which the
// normalizer turns into a call or fold as the situation demands.
type RemoteAgent struct {
	conn      *websocket.Conn
	clock     quartz.Clock
	timeout   time.Duration
	logger    *log.Logger
	responses chan string

	mu     sync.Mutex
	closed bool
}

// NewRemoteAgent dials the decision service. http(s) URLs are
// rewritten to their websocket equivalents.
func NewRemoteAgent(serverURL string, timeout time.Duration, clock quartz.Clock, logger *log.Logger) (*RemoteAgent, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid decision service URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to decision service: %w", err)
	}

	a := &RemoteAgent{
		conn:      conn,
		clock:     clock,
		timeout:   timeout,
		logger:    logger.WithPrefix("remote"),
		responses: make(chan string, 1),
	}
	go a.readResponses()
	return a, nil
}

func (a *RemoteAgent) readResponses() {
	for {
		_, data, err := a.conn.ReadMessage()
		if err != nil {
			a.mu.Lock()
			closed := a.closed
			a.mu.Unlock()
			if !closed {
				a.logger.Warn("decision service connection lost", "error", err)
			}
			return
		}
		select {
		case a.responses <- string(data):
		default:
			// A reply nobody is waiting for, likely after a timeout
			a.logger.Debug("dropping unsolicited response")
		}
	}
}

func (a *RemoteAgent) Decide(req game.DecisionRequest) (string, int) {
	payload := decisionPayload{
		Seat:      req.Name,
		Street:    req.Street.String(),
		Hole:      cardStrings(req.Hole),
		Board:     cardStrings(req.Board),
		Stacks:    req.Stacks,
		Order:     req.Order,
		Pot:       req.Pot,
		ToCall:    req.ToCall,
		Opened:    req.Opened,
		LastRaise: req.LastRaise,
		MinBet:    req.MinBet,
	}

	a.mu.Lock()
	err := a.conn.WriteJSON(payload)
	a.mu.Unlock()
	if err != nil {
		a.logger.Warn("failed to send decision request", "seat", req.Name, "error", err)
		return "check", 0
	}

	timedOut := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	select {
	case raw := <-a.responses:
		action, amount := ExtractProposal(raw)
		a.logger.Debug("remote proposal", "seat", req.Name, "action", action, "amount", amount)
		return action, amount
	case <-timedOut:
		a.logger.Warn("decision service timed out", "seat", req.Name, "timeout", a.timeout)
		return "check", 0
	}
}

// Close shuts the connection down
func (a *RemoteAgent) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.conn.Close()
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
