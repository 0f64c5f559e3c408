package pipeline

// Observer receives progress from the orchestrator. Implementations must be
// safe to call from the goroutine running the pipeline and must not block
// for long.
type Observer interface {
	OnProgress(stage string, percent int)
	OnWarning(message string)
}

// FailureObserver is implemented by observers that also want to know when a
// run aborts
type FailureObserver interface {
	OnFailure(err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	Progress func(stage string, percent int)
	Warning  func(message string)
	Failure  func(err error)
}

func (o ObserverFuncs) OnProgress(stage string, percent int) {
	if o.Progress != nil {
		o.Progress(stage, percent)
	}
}

func (o ObserverFuncs) OnWarning(message string) {
	if o.Warning != nil {
		o.Warning(message)
	}
}

func (o ObserverFuncs) OnFailure(err error) {
	if o.Failure != nil {
		o.Failure(err)
	}
}

// Nop discards every notification
var Nop Observer = ObserverFuncs{}

type multiObserver []Observer

// Multi fans notifications out to several observers in order
func Multi(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) OnProgress(stage string, percent int) {
	for _, o := range m {
		o.OnProgress(stage, percent)
	}
}

func (m multiObserver) OnWarning(message string) {
	for _, o := range m {
		o.OnWarning(message)
	}
}

func (m multiObserver) OnFailure(err error) {
	for _, o := range m {
		if f, ok := o.(FailureObserver); ok {
			f.OnFailure(err)
		}
	}
}
