package query

// Stage names a phase of priming a single file: the passes a session
// needs warm before interactive requests arrive, in pipeline order.
type Stage string

const (
	StageItemTree Stage = "item_tree"
	StageInfer    Stage = "infer"
)

// Status captures a file's progress within Prime.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports one file's priming progress. File is empty for an
// overall-pipeline event (none are emitted today, kept for parity with
// the per-stage event shape a future batch-level rollup could use).
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes Prime's progress events. A nil sink (the common
// case for a one-shot `wgsla check`) means Prime emits nothing.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel, for a consumer (e.g. a
// Bubble Tea progress model) that wants to read them off a goroutine
// other than Prime's caller.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent forwards evt to the channel, or drops it if Ch is nil.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
