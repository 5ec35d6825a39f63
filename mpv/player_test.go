package mpv

import (
	"context"
	"testing"
	"time"
)

func TestPlayerExecutesInOrder(t *testing.T) {
	fake, socket := startFakeMpv(t, map[string]interface{}{"pause": false})
	client := NewClient(socket)
	if err := client.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	results := make(chan SeekResult, 1)
	player := NewPlayer(client)
	player.OnSeek = func(r SeekResult) { results <- r }

	player.Pause()
	player.Seek(7, 3.5)
	player.Play()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go player.Run(ctx)

	select {
	case r := <-results:
		if r.Token != 7 || r.Seconds != 3.5 || r.Err != nil {
			t.Fatalf("unexpected seek result: %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("seek was not reported")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cmd := fake.lastCommand(); len(cmd) == 3 && cmd[0] == "set_property" && cmd[2] == false {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("play was not executed after the seek, last command %v", fake.lastCommand())
}

func queued(p *Player) []playerOp {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]playerOp(nil), p.pending...)
}

func TestPlayerKeepsPauseUnderSeekBurst(t *testing.T) {
	player := NewPlayer(nil)
	player.Pause()
	for i := 1; i <= 16; i++ {
		player.Seek(uint64(i), float64(i)/2)
	}

	ops := queued(player)
	if len(ops) != 2 {
		t.Fatalf("queued %d ops, want pause + newest seek: %+v", len(ops), ops)
	}
	if ops[0].kind != opPause {
		t.Fatalf("first op = %d, want pause", ops[0].kind)
	}
	if ops[1].kind != opSeek || ops[1].token != 16 || ops[1].seconds != 8 {
		t.Fatalf("second op = %+v, want seek token 16 to 8s", ops[1])
	}
}

func TestPlayerQueueCoalescing(t *testing.T) {
	tests := []struct {
		name  string
		calls func(p *Player)
		want  []opKind
		token uint64
	}{
		{
			name: "release keeps seek then play",
			calls: func(p *Player) {
				p.Pause()
				p.Seek(1, 1)
				p.Seek(2, 2)
				p.Play()
			},
			want:  []opKind{opPause, opSeek, opPlay},
			token: 2,
		},
		{
			name: "seek after play moves behind it",
			calls: func(p *Player) {
				p.Seek(1, 1)
				p.Play()
				p.Seek(2, 0)
			},
			want:  []opKind{opPlay, opSeek},
			token: 2,
		},
		{
			name: "adjacent play and pause collapse",
			calls: func(p *Player) {
				p.Pause()
				p.Play()
				p.Pause()
			},
			want: []opKind{opPause},
		},
		{
			name: "grab and release between seeks",
			calls: func(p *Player) {
				p.Pause()
				p.Seek(1, 1)
				p.Play()
				p.Pause()
				p.Seek(2, 2)
			},
			want:  []opKind{opPause, opSeek},
			token: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := NewPlayer(nil)
			tt.calls(player)
			ops := queued(player)
			if len(ops) != len(tt.want) {
				t.Fatalf("queued %+v, want kinds %v", ops, tt.want)
			}
			for i, op := range ops {
				if op.kind != tt.want[i] {
					t.Fatalf("op %d kind = %d, want %d (%+v)", i, op.kind, tt.want[i], ops)
				}
				if op.kind == opSeek && op.token != tt.token {
					t.Fatalf("seek token = %d, want %d", op.token, tt.token)
				}
			}
		})
	}
}

func TestPlayerQueueNeverBlocks(t *testing.T) {
	player := NewPlayer(NewClient(""))
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			player.Seek(uint64(i), float64(i))
			player.Pause()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked")
	}
	if n := len(queued(player)); n > 3 {
		t.Fatalf("queue length = %d, want it bounded by coalescing", n)
	}
}
