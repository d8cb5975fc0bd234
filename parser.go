package vtengine

// Handler receives the events dispatched by Parser as it walks the DEC ANSI
// state machine. Terminal is the only production implementation, but the
// interface lets the state machine be exercised without a full terminal.
type Handler interface {
	Print(r rune)
	Execute(r rune)
	CsiDispatch(final rune, intermediates []byte, params []uint16)
	EscDispatch(final rune, intermediates []byte)
	Hook(intermediates []byte, params []uint16)
	Put(r rune)
	Unhook()
	OscStart()
	OscPut(r rune)
	OscEnd()
}

type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateOscString
	stateSosPmApcString
)

const maxParams = 16
const maxIntermediates = 2

// Parser is a direct implementation of Paul Williams' DEC ANSI parser: a
// deterministic state machine over Unicode input that dispatches Print,
// Execute, CsiDispatch, EscDispatch, Hook/Put/Unhook, and OscStart/Put/End
// events to a Handler as it walks escape and control sequences.
type Parser struct {
	state         parserState
	params        []uint16
	intermediates []byte
}

// NewParser returns a Parser positioned in its initial Ground state.
func NewParser() *Parser {
	return &Parser{params: []uint16{0}}
}

// Feed processes every rune of s in order, dispatching events to h.
func (p *Parser) Feed(s string, h Handler) {
	for _, r := range s {
		p.feedRune(r, h)
	}
}

func (p *Parser) clear() {
	p.params = p.params[:1]
	p.params[0] = 0
	p.intermediates = p.intermediates[:0]
}

func (p *Parser) collect(r rune) {
	if len(p.intermediates) < maxIntermediates {
		p.intermediates = append(p.intermediates, byte(r))
	}
}

func (p *Parser) param(r rune) {
	if r == ';' {
		if len(p.params) < maxParams {
			p.params = append(p.params, 0)
		}
		return
	}
	d := uint16(r - '0')
	last := len(p.params) - 1
	v := uint32(p.params[last])*10 + uint32(d)
	if v > 0xffff {
		v = 0xffff
	}
	p.params[last] = uint16(v)
}

// feedRune runs one character through the state table, applying the
// required exit/transition/entry action ordering for a genuine transition,
// or the single self-event action when the state does not change.
func (p *Parser) feedRune(r rune, h Handler) {
	next, action, selfEvent := p.lookup(r)
	if selfEvent {
		p.perform(r, h, action)
		return
	}
	p.perform(r, h, p.exitAction(p.state))
	p.perform(r, h, action)
	p.perform(r, h, p.entryAction(next))
	p.state = next
}

func (p *Parser) entryAction(s parserState) actionKind {
	switch s {
	case stateEscape, stateCsiEntry, stateDcsEntry:
		return actionClear
	case stateOscString:
		return actionOscStart
	case stateDcsPassthrough:
		return actionHook
	default:
		return actionNone
	}
}

func (p *Parser) exitAction(s parserState) actionKind {
	switch s {
	case stateOscString:
		return actionOscEnd
	case stateDcsPassthrough:
		return actionUnhook
	default:
		return actionNone
	}
}

type actionKind uint8

const (
	actionNone actionKind = iota
	actionPrint
	actionExecute
	actionClear
	actionCollect
	actionParam
	actionCsiDispatch
	actionEscDispatch
	actionHook
	actionPut
	actionUnhook
	actionOscStart
	actionOscPut
	actionOscEnd
	actionIgnore
)

func (p *Parser) perform(r rune, h Handler, a actionKind) {
	switch a {
	case actionNone, actionIgnore:
	case actionPrint:
		h.Print(r)
	case actionExecute:
		h.Execute(r)
	case actionClear:
		p.clear()
	case actionCollect:
		p.collect(r)
	case actionParam:
		p.param(r)
	case actionCsiDispatch:
		h.CsiDispatch(r, p.intermediates, p.params)
	case actionEscDispatch:
		h.EscDispatch(r, p.intermediates)
	case actionHook:
		h.Hook(p.intermediates, p.params)
	case actionPut:
		h.Put(r)
	case actionUnhook:
		h.Unhook()
	case actionOscStart:
		h.OscStart()
	case actionOscPut:
		h.OscPut(r)
	case actionOscEnd:
		h.OscEnd()
	}
}

// lookup returns the destination state and action for r given the current
// state. selfEvent is true when the pair is a same-state event (only the
// action runs); otherwise next is the destination of a genuine transition.
func (p *Parser) lookup(r rune) (next parserState, action actionKind, selfEvent bool) {
	// Anywhere transitions, independent of current state.
	switch r {
	case '\x18', '\x1a':
		return stateGround, actionExecute, false
	case '\x1b':
		return stateEscape, actionNone, false
	}

	switch p.state {
	case stateGround:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case r >= 0x80 && r <= 0x9f:
			return 0, actionExecute, true
		case r >= 0x20 && r <= 0x7f, r >= 0xa0:
			return 0, actionPrint, true
		}
		return 0, actionIgnore, true

	case stateEscape:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r >= 0x20 && r <= 0x2f:
			return stateEscapeIntermediate, actionCollect, false
		case r == 0x5b:
			return stateCsiEntry, actionNone, false
		case r == 0x5d:
			return stateOscString, actionNone, false
		case r == 0x50:
			return stateDcsEntry, actionNone, false
		case r == 0x58 || r == 0x5e || r == 0x5f:
			return stateSosPmApcString, actionNone, false
		case (r >= 0x30 && r <= 0x4f) || (r >= 0x51 && r <= 0x57) ||
			r == 0x59 || r == 0x5a || r == 0x5c || (r >= 0x60 && r <= 0x7e):
			return stateGround, actionEscDispatch, false
		}
		return 0, actionIgnore, true

	case stateEscapeIntermediate:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case r >= 0x20 && r <= 0x2f:
			return 0, actionCollect, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r >= 0x30 && r <= 0x7e:
			return stateGround, actionEscDispatch, false
		}
		return 0, actionIgnore, true

	case stateCsiEntry:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r >= 0x20 && r <= 0x2f:
			return stateCsiIntermediate, actionCollect, false
		case r == 0x3a:
			return stateCsiIgnore, actionNone, false
		case (r >= 0x30 && r <= 0x39) || r == 0x3b:
			return stateCsiParam, actionParam, false
		case r >= 0x3c && r <= 0x3f:
			return stateCsiParam, actionCollect, false
		case r >= 0x40 && r <= 0x7e:
			return stateGround, actionCsiDispatch, false
		}
		return 0, actionIgnore, true

	case stateCsiIgnore:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case (r >= 0x20 && r <= 0x3f) || r == 0x7f:
			return 0, actionIgnore, true
		case r >= 0x40 && r <= 0x7e:
			return stateGround, actionNone, false
		}
		return 0, actionIgnore, true

	case stateCsiParam:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case (r >= 0x30 && r <= 0x39) || r == 0x3b:
			return 0, actionParam, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r == 0x3a || (r >= 0x3c && r <= 0x3f):
			return stateCsiIgnore, actionNone, false
		case r >= 0x20 && r <= 0x2f:
			return stateCsiIntermediate, actionCollect, false
		case r >= 0x40 && r <= 0x7e:
			return stateGround, actionCsiDispatch, false
		}
		return 0, actionIgnore, true

	case stateCsiIntermediate:
		switch {
		case isC0(r):
			return 0, actionExecute, true
		case r >= 0x20 && r <= 0x2f:
			return 0, actionCollect, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r >= 0x30 && r <= 0x3f:
			return stateCsiIgnore, actionNone, false
		case r >= 0x40 && r <= 0x7e:
			return stateGround, actionCsiDispatch, false
		}
		return 0, actionIgnore, true

	case stateDcsEntry:
		switch {
		case isC0(r) || r == 0x7f:
			return 0, actionIgnore, true
		case r == 0x3a:
			return stateDcsIgnore, actionNone, false
		case r >= 0x20 && r <= 0x2f:
			return stateDcsIntermediate, actionCollect, false
		case (r >= 0x30 && r <= 0x39) || r == 0x3b:
			return stateDcsParam, actionParam, false
		case r >= 0x3c && r <= 0x3f:
			return stateDcsParam, actionCollect, false
		case r >= 0x40 && r <= 0x7e:
			return stateDcsPassthrough, actionNone, false
		}
		return 0, actionIgnore, true

	case stateDcsIntermediate:
		switch {
		case isC0(r):
			return 0, actionIgnore, true
		case r >= 0x20 && r <= 0x2f:
			return 0, actionCollect, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r >= 0x30 && r <= 0x3f:
			return stateDcsIgnore, actionNone, false
		case r >= 0x40 && r <= 0x7e:
			return stateDcsPassthrough, actionNone, false
		}
		return 0, actionIgnore, true

	case stateDcsIgnore:
		return 0, actionIgnore, true

	case stateDcsParam:
		switch {
		case isC0(r):
			return 0, actionIgnore, true
		case (r >= 0x30 && r <= 0x39) || r == 0x3b:
			return 0, actionParam, true
		case r == 0x7f:
			return 0, actionIgnore, true
		case r == 0x3a || (r >= 0x3c && r <= 0x3f):
			return stateDcsIgnore, actionNone, false
		case r >= 0x20 && r <= 0x2f:
			return stateDcsIntermediate, actionCollect, false
		case r >= 0x40 && r <= 0x7e:
			return stateDcsPassthrough, actionNone, false
		}
		return 0, actionIgnore, true

	case stateDcsPassthrough:
		switch {
		case isC0(r) || (r >= 0x20 && r <= 0x7e):
			return 0, actionPut, true
		case r == 0x7f:
			return 0, actionIgnore, true
		}
		return 0, actionIgnore, true

	case stateSosPmApcString:
		return 0, actionIgnore, true

	case stateOscString:
		switch {
		case isC0(r):
			return 0, actionIgnore, true
		case r >= 0x20 && r <= 0x7f:
			return 0, actionOscPut, true
		}
		return 0, actionIgnore, true
	}

	return 0, actionIgnore, true
}

func isC0(r rune) bool {
	return (r >= 0x00 && r <= 0x17) || r == 0x19 || (r >= 0x1c && r <= 0x1f)
}
