package sequencer

// NoticeKind classifies a Notice.
type NoticeKind string

const (
	NoticeStarted      NoticeKind = "started"
	NoticeStep         NoticeKind = "step"
	NoticeCompleted    NoticeKind = "completed"
	NoticeReset        NoticeKind = "reset"
	NoticeIgnoredStart NoticeKind = "ignored-start"
	NoticeStale        NoticeKind = "stale"
	NoticeOutOfOrder   NoticeKind = "out-of-order"
)

// Notice describes a sequencer transition or an ignored request.
type Notice struct {
	Kind     NoticeKind
	Run      RunID
	Index    int
	Headline string
	Reason   string
}

// Observer receives notices synchronously. It must not call back into the
// sequencer.
type Observer func(Notice)
