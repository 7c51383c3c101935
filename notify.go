package debuglog

// Notifier surfaces the one-time user-facing write-failure dialog request.
// The host integration layer owns presentation and localization; the service
// only guarantees the notification fires at most once per process.
type Notifier interface {
	NotifyWriteFailure(err error)
}

// NotifierFunc adapts a plain function to the Notifier interface
type NotifierFunc func(err error)

func (f NotifierFunc) NotifyWriteFailure(err error) {
	f(err)
}

// nopNotifier is used when no notifier is wired in
var nopNotifier = NotifierFunc(func(error) {})
