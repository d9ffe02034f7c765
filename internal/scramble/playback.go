package scramble

// Playback is one run of an Animator from frame zero to completion.
type Playback struct {
	animator  *Animator
	scheduler Scheduler
	sink      Sink
	frame     int
	rendered  int
	total     int
	ticks     int
	done      bool
}

// Play renders the first frame immediately and keeps scheduling ticks until
// the text has settled. The last write to sink is always the normalized text.
// There is no way to stop a playback; a host that loses interest simply
// ignores further writes.
func (a *Animator) Play(scheduler Scheduler, sink Sink) *Playback {
	p := &Playback{
		animator:  a,
		scheduler: scheduler,
		sink:      sink,
		total:     a.TotalFrames(),
	}
	p.tick()
	return p
}

func (p *Playback) tick() {
	if p.done {
		return
	}
	p.ticks++
	frame := p.animator.Render(p.frame, p.total)
	p.rendered = p.frame
	p.sink.SetText(frame.Text)
	if frame.Complete || p.frame >= p.total {
		p.sink.SetText(p.animator.text)
		p.done = true
		return
	}
	p.frame++
	p.scheduler.ScheduleNextTick(p.tick)
}

func (p *Playback) Done() bool { return p.done }

// Frame is the index of the frame rendered last.
func (p *Playback) Frame() int { return p.rendered }

func (p *Playback) TotalFrames() int { return p.total }

// Ticks counts how many times the playback has rendered.
func (p *Playback) Ticks() int { return p.ticks }
