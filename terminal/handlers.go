package terminal

// Request is a single action addressed to a session.
type Request struct {
	Action Action
	// PIN is read by CheckPin only.
	PIN string
	// Amount is read by Withdraw and Deposit only.
	Amount float64
}

// handlerEnv is the mutable slice of the session a state handler may touch.
// It is built for the duration of one call and never retained.
type handlerEnv struct {
	terminal           string
	balance            *float64
	failureProbability float64
	oracle             *ConnectionOracle
}

// outcome is what a handler hands back to the session.
type outcome struct {
	next    State
	notices []Notification
	handled bool
}

func unhandled(state State) outcome {
	return outcome{next: state}
}

func moved(from, to State, kind NoticeKind, amount float64) outcome {
	return outcome{
		next:    to,
		notices: []Notification{newNotice(kind, from, amount)},
		handled: true,
	}
}

// handle selects the handler for the current state.
func handle(state State, env *handlerEnv, req Request) outcome {
	switch state {
	case Waiting:
		return handleWaiting(req)
	case VerifyingPin:
		return handleVerifyingPin(env, req)
	case Operating:
		return handleOperating(env, req)
	default:
		return unhandled(state)
	}
}

func handleWaiting(req Request) outcome {
	switch req.Action { //nolint:exhaustive // remaining actions are no-ops
	case InsertCard:
		return moved(Waiting, VerifyingPin, CardInserted, 0)
	default:
		return unhandled(Waiting)
	}
}

// handleVerifyingPin never compares the PIN to a stored credential: success is
// decided by the connection oracle alone.
func handleVerifyingPin(env *handlerEnv, req Request) outcome {
	switch req.Action { //nolint:exhaustive // remaining actions are no-ops
	case CheckPin:
		if env.oracle.Succeeds(env.failureProbability) {
			connectionChecksTotal.WithLabelValues(sanitizeTerminal(env.terminal), "ok").Inc()

			return moved(VerifyingPin, Operating, PinAccepted, 0)
		}

		connectionChecksTotal.WithLabelValues(sanitizeTerminal(env.terminal), "lost").Inc()

		return moved(VerifyingPin, Waiting, ConnectionLost, 0)
	case CompleteWork:
		return moved(VerifyingPin, Waiting, WorkCompleted, 0)
	default:
		return unhandled(VerifyingPin)
	}
}

// handleOperating credits nothing on Deposit; only the notice is emitted.
func handleOperating(env *handlerEnv, req Request) outcome {
	switch req.Action { //nolint:exhaustive // remaining actions are no-ops
	case Withdraw:
		if req.Amount <= *env.balance {
			*env.balance -= req.Amount

			withdrawnAmount.WithLabelValues(sanitizeTerminal(env.terminal)).Observe(req.Amount)

			return moved(Operating, Operating, MoneyTaken, req.Amount)
		}

		return moved(Operating, Operating, InsufficientFunds, req.Amount)
	case Deposit:
		return moved(Operating, Operating, Funded, req.Amount)
	case CompleteWork:
		return moved(Operating, Waiting, WorkCompleted, 0)
	default:
		return unhandled(Operating)
	}
}
