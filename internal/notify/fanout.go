package notify

import "context"

// Fanout forwards each delta to every configured publisher. Combined with
// the publishers' own best-effort contract this keeps the booking path
// oblivious to how many transports are attached.
type Fanout struct {
	publishers []Publisher
}

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Publish(ctx context.Context, delta Delta) {
	for _, p := range f.publishers {
		p.Publish(ctx, delta)
	}
}
