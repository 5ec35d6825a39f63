package mpv

import (
	"context"
	"log"
	"sync"
)

type opKind int

const (
	opSeek opKind = iota
	opPlay
	opPause
)

type playerOp struct {
	kind    opKind
	token   uint64
	seconds float64
}

// SeekResult reports the completion of a seek issued through Player.
type SeekResult struct {
	Token   uint64
	Seconds float64
	Err     error
}

// Player drives mpv without blocking the caller. Commands are queued and
// executed in order by Run; seek completions are reported through OnSeek.
//
// The queue stays short on its own: a new seek replaces any seek still
// waiting, and back-to-back play/pause commands collapse to the last one.
// Play and pause are never discarded while a seek sits between them.
type Player struct {
	client *Client
	// OnSeek is called from the Run goroutine after every executed seek.
	OnSeek func(SeekResult)

	mu      sync.Mutex
	pending []playerOp
	wake    chan struct{}
}

// NewPlayer returns a player for client.
func NewPlayer(client *Client) *Player {
	return &Player{client: client, wake: make(chan struct{}, 1)}
}

// Seek queues an absolute seek tagged with token.
func (p *Player) Seek(token uint64, seconds float64) {
	p.enqueue(playerOp{kind: opSeek, token: token, seconds: seconds})
}

// Play queues a resume.
func (p *Player) Play() {
	p.enqueue(playerOp{kind: opPlay})
}

// Pause queues a pause.
func (p *Player) Pause() {
	p.enqueue(playerOp{kind: opPause})
}

func (p *Player) enqueue(op playerOp) {
	p.mu.Lock()
	if op.kind == opSeek {
		kept := p.pending[:0]
		for _, queued := range p.pending {
			if queued.kind != opSeek {
				kept = append(kept, queued)
			}
		}
		p.pending = kept
	}
	p.pending = compact(append(p.pending, op))
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// compact collapses runs of play/pause into their last command.
func compact(ops []playerOp) []playerOp {
	out := ops[:0]
	for _, op := range ops {
		if op.kind != opSeek && len(out) > 0 && out[len(out)-1].kind != opSeek {
			out[len(out)-1] = op
			continue
		}
		out = append(out, op)
	}
	return out
}

func (p *Player) next() (playerOp, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return playerOp{}, false
	}
	op := p.pending[0]
	p.pending = append(p.pending[:0], p.pending[1:]...)
	return op, true
}

// Run executes queued commands until ctx is cancelled.
func (p *Player) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		op, ok := p.next()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-p.wake:
			}
			continue
		}
		p.exec(op)
	}
}

func (p *Player) exec(op playerOp) {
	switch op.kind {
	case opSeek:
		err := p.client.SeekAbsolute(op.seconds)
		if err != nil {
			log.Printf("mpv: seek to %.3f: %v", op.seconds, err)
		}
		if p.OnSeek != nil {
			p.OnSeek(SeekResult{Token: op.token, Seconds: op.seconds, Err: err})
		}
	case opPlay:
		if err := p.client.SetPaused(false); err != nil {
			log.Printf("mpv: play: %v", err)
		}
	case opPause:
		if err := p.client.SetPaused(true); err != nil {
			log.Printf("mpv: pause: %v", err)
		}
	}
}
