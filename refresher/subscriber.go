package refresher

// Subscriber handles event subscriptions.
type Subscriber struct {
	done             chan struct{}
	startedHandler   func(RefreshStarted)
	unmatchedHandler func(ValidatorUnmatched)
	skippedHandler   func(ValidatorSkipped)
	cachedHandler    func(ValidatorCached)
	failedHandler    func(ValidatorFailed)
	doneHandler      func(RefreshDone)
	errorHandler     func(RefreshFailed)
}

// OnRefreshStarted sets the handler for RefreshStarted events
func OnRefreshStarted(fn func(RefreshStarted)) func(*Subscriber) {
	return func(s *Subscriber) { s.startedHandler = fn }
}

// OnValidatorUnmatched sets the handler for ValidatorUnmatched events
func OnValidatorUnmatched(fn func(ValidatorUnmatched)) func(*Subscriber) {
	return func(s *Subscriber) { s.unmatchedHandler = fn }
}

// OnValidatorSkipped sets the handler for ValidatorSkipped events
func OnValidatorSkipped(fn func(ValidatorSkipped)) func(*Subscriber) {
	return func(s *Subscriber) { s.skippedHandler = fn }
}

// OnValidatorCached sets the handler for ValidatorCached events
func OnValidatorCached(fn func(ValidatorCached)) func(*Subscriber) {
	return func(s *Subscriber) { s.cachedHandler = fn }
}

// OnValidatorFailed sets the handler for ValidatorFailed events
func OnValidatorFailed(fn func(ValidatorFailed)) func(*Subscriber) {
	return func(s *Subscriber) { s.failedHandler = fn }
}

// OnRefreshDone sets the handler for RefreshDone events
func OnRefreshDone(fn func(RefreshDone)) func(*Subscriber) {
	return func(s *Subscriber) { s.doneHandler = fn }
}

// OnRefreshFailed sets the handler for RefreshFailed events
func OnRefreshFailed(fn func(RefreshFailed)) func(*Subscriber) {
	return func(s *Subscriber) { s.errorHandler = fn }
}

// NewSubscriber creates a Subscriber with the given options and starts the dispatch loop.
// Returns a closer function that waits for all events to be processed.
//
// Example:
//
//	closer := refresher.NewSubscriber(events,
//	  refresher.OnRefreshDone(func(d RefreshDone) { ... }),
//	)
//	defer closer()  // Ensures all events processed before exit
func NewSubscriber(events <-chan Event, opts ...func(*Subscriber)) func() {
	s := &Subscriber{
		done:             make(chan struct{}),
		startedHandler:   func(RefreshStarted) {},     // nop by default
		unmatchedHandler: func(ValidatorUnmatched) {}, // nop by default
		skippedHandler:   func(ValidatorSkipped) {},   // nop by default
		cachedHandler:    func(ValidatorCached) {},    // nop by default
		failedHandler:    func(ValidatorFailed) {},    // nop by default
		doneHandler:      func(RefreshDone) {},        // nop by default
		errorHandler:     func(RefreshFailed) {},      // nop by default
	}

	for _, opt := range opts {
		opt(s)
	}

	go func() {
		defer close(s.done)
		for ev := range events {
			switch e := ev.(type) {
			case RefreshStarted:
				s.startedHandler(e)
			case ValidatorUnmatched:
				s.unmatchedHandler(e)
			case ValidatorSkipped:
				s.skippedHandler(e)
			case ValidatorCached:
				s.cachedHandler(e)
			case ValidatorFailed:
				s.failedHandler(e)
			case RefreshDone:
				s.doneHandler(e)
			case RefreshFailed:
				s.errorHandler(e)
			}
		}
	}()

	return func() {
		<-s.done
	}
}
